package entity

import "errors"

var ErrPlanNotFound = errors.New("produto não encontrado")

// Plan é imutável e definido em tempo de deploy. O hash identifica o
// produto correspondente no gateway Paradise e nunca vai pro cliente.
type Plan struct {
	Name        string  `json:"name"`
	PriceBRL    float64 `json:"price"`
	ProductHash string  `json:"-"`
}

var Plans = []Plan{
	{Name: "Kit 3 Meses", PriceBRL: 123.90, ProductHash: "prod_d6a5ebe96b2eb490"},
	{Name: "Kit 5 Meses", PriceBRL: 167.90, ProductHash: "prod_9dc131fea65a345d"},
	{Name: "Kit 12 Meses", PriceBRL: 227.90, ProductHash: "prod_c5e1a25852bd498a"},
}

func FindPlanByName(name string) (*Plan, error) {
	for i := range Plans {
		if Plans[i].Name == name {
			return &Plans[i], nil
		}
	}
	return nil, ErrPlanNotFound
}
