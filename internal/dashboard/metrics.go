package dashboard

import (
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/shopspring/decimal"
)

// Data 四個 admin collection 的一次快照
type Data struct {
	Users    []model.User
	Artworks []model.Artwork
	Orders   []model.Order
	Reviews  []model.Review
}

// MonthBucket 只以月份名稱分組, 不同年份會落在同一格
type MonthBucket struct {
	Month  string          `json:"month"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type Metrics struct {
	Users           int             `json:"users"`
	Artists         int             `json:"artists"`
	Artworks        int             `json:"artworks"`
	PendingArtworks int             `json:"pending_artworks"`
	Orders          int             `json:"orders"`
	Reviews         int             `json:"reviews"`
	Revenue         decimal.Decimal `json:"revenue"`
	UserGrowth      []MonthBucket   `json:"user_growth"`
	Sales           []MonthBucket   `json:"sales"`
	RefreshedAt     time.Time       `json:"refreshed_at"`
}

// OrderTotal totalAmount 缺少時退回 amount
func OrderTotal(o model.Order) decimal.Decimal {
	if o.TotalAmount != nil {
		return *o.TotalAmount
	}
	return o.Amount
}

func emptyBuckets() []MonthBucket {
	out := make([]MonthBucket, 12)
	for i := range out {
		out[i] = MonthBucket{Month: time.Month(i + 1).String(), Amount: decimal.Zero}
	}
	return out
}

func Compute(d Data, now time.Time) Metrics {
	m := Metrics{
		Users:       len(d.Users),
		Artworks:    len(d.Artworks),
		Orders:      len(d.Orders),
		Reviews:     len(d.Reviews),
		Revenue:     decimal.Zero,
		UserGrowth:  emptyBuckets(),
		Sales:       emptyBuckets(),
		RefreshedAt: now,
	}
	for _, u := range d.Users {
		if u.UserType == model.RoleArtist {
			m.Artists++
		}
		if !u.CreatedAt.IsZero() {
			m.UserGrowth[u.CreatedAt.Month()-1].Count++
		}
	}
	for _, a := range d.Artworks {
		if a.Status == model.ArtworkPending {
			m.PendingArtworks++
		}
	}
	for _, o := range d.Orders {
		total := OrderTotal(o)
		m.Revenue = m.Revenue.Add(total)
		if !o.OrderDate.IsZero() {
			b := &m.Sales[o.OrderDate.Month()-1]
			b.Count++
			b.Amount = b.Amount.Add(total)
		}
	}
	return m
}
