package draw

import (
	"strings"
	"time"

	"lottery_service/internal/engine"
)

// Result is the official outcome of one province's draw on one date. Tier
// columns hold the published numbers comma-joined in publication order;
// multi-number tiers (e.g. the Sixth prize) keep all entries. M2 draws leave
// the Eighth column empty.
type Result struct {
	ResultID string `gorm:"column:result_id;primaryKey;type:uuid;default:uuid_generate_v4()" json:"result_id"`
	Province string `gorm:"column:province;type:varchar(50);not null;uniqueIndex:idx_results_draw" json:"province"`
	DrawDate string `gorm:"column:draw_date;type:varchar(10);not null;uniqueIndex:idx_results_draw" json:"draw_date"`
	Region   string `gorm:"column:region;type:varchar(8);not null" json:"region"`

	GiaiDacBiet string `gorm:"column:giai_dac_biet;type:varchar(255);not null;default:''" json:"giai_dac_biet"`
	GiaiNhat    string `gorm:"column:giai_nhat;type:varchar(255);not null;default:''" json:"giai_nhat"`
	GiaiNhi     string `gorm:"column:giai_nhi;type:varchar(255);not null;default:''" json:"giai_nhi"`
	GiaiBa      string `gorm:"column:giai_ba;type:varchar(255);not null;default:''" json:"giai_ba"`
	GiaiTu      string `gorm:"column:giai_tu;type:varchar(255);not null;default:''" json:"giai_tu"`
	GiaiNam     string `gorm:"column:giai_nam;type:varchar(255);not null;default:''" json:"giai_nam"`
	GiaiSau     string `gorm:"column:giai_sau;type:varchar(255);not null;default:''" json:"giai_sau"`
	GiaiBay     string `gorm:"column:giai_bay;type:varchar(255);not null;default:''" json:"giai_bay"`
	GiaiTam     string `gorm:"column:giai_tam;type:varchar(255);not null;default:''" json:"giai_tam"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

func (Result) TableName() string { return "draw_results" }

// splitTier yields an empty, non-nil slice for an empty column: the engine
// contract wants empty tiers, never nil.
func splitTier(col string) []string {
	if col == "" {
		return []string{}
	}
	parts := strings.Split(col, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Tiers projects the row onto the engine's per-tier view.
func (r *Result) Tiers() engine.DrawTiers {
	return engine.DrawTiers{
		DacBiet: splitTier(r.GiaiDacBiet),
		Nhat:    splitTier(r.GiaiNhat),
		Nhi:     splitTier(r.GiaiNhi),
		Ba:      splitTier(r.GiaiBa),
		Tu:      splitTier(r.GiaiTu),
		Nam:     splitTier(r.GiaiNam),
		Sau:     splitTier(r.GiaiSau),
		Bay:     splitTier(r.GiaiBay),
		Tam:     splitTier(r.GiaiTam),
	}
}
