package catalog

import (
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// 靜態商品目錄
// 商品清單在建構時載入，之後只讀不寫
type CatalogRepo struct {
	products   []model.Product
	categories []model.Category
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{
		products:   seedProducts(),
		categories: seedCategories(),
	}
}

// GetAllProducts 回傳目錄順序的商品清單
func (r *CatalogRepo) GetAllProducts() []model.Product {
	result := make([]model.Product, len(r.products))
	copy(result, r.products)
	return result
}

func (r *CatalogRepo) GetProductByID(id int) (*model.Product, error) {
	for _, p := range r.products {
		if p.ProductID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *CatalogRepo) GetCategories() []model.Category {
	result := make([]model.Category, len(r.categories))
	copy(result, r.categories)
	return result
}

func seedProducts() []model.Product {
	return []model.Product{
		{
			ProductID:     1,
			Name:          "Royal Thushi Set",
			Price:         decimal.NewFromInt(45999),
			OriginalPrice: decimal.NewFromInt(52999),
			Image:         "/thushi.png",
			Category:      "all-jewellery",
			Subcategory:   "thushi",
			Rating:        4.8,
			Reviews:       124,
			Description:   "Exquisite traditional Maharashtrian Thushi set crafted with 22K gold and adorned with precious pearls.",
			InStock:       true,
			Featured:      true,
		},
		{
			ProductID:     2,
			Name:          "Maharani Necklace",
			Price:         decimal.NewFromInt(89999),
			OriginalPrice: decimal.NewFromInt(99999),
			Image:         "/necklace.png",
			Category:      "all-jewellery",
			Subcategory:   "thushi",
			Rating:        4.9,
			Reviews:       89,
			Description:   "Regal necklace design inspired by Maharashtrian royalty.",
			InStock:       true,
			Featured:      true,
		},
		{
			ProductID:     3,
			Name:          "Heritage Bangles Set",
			Price:         decimal.NewFromInt(32999),
			OriginalPrice: decimal.NewFromInt(38999),
			Image:         "/bangles.png",
			Category:      "all-jewellery",
			Subcategory:   "bracelets",
			Rating:        4.7,
			Reviews:       67,
			Description:   "Set of traditional gold bangles with intricate carvings.",
			InStock:       true,
			Featured:      false,
		},
		{
			ProductID:     4,
			Name:          "Traditional Nath",
			Price:         decimal.NewFromInt(15999),
			OriginalPrice: decimal.NewFromInt(18999),
			Image:         "/nath.png",
			Category:      "nath-category",
			Subcategory:   "gold-nath",
			Rating:        4.6,
			Reviews:       156,
			Description:   "Classic Maharashtrian nath in pure gold with pearl detailing.",
			InStock:       true,
			Featured:      true,
		},
		{
			ProductID:     5,
			Name:          "Diamond Mangalsutra",
			Price:         decimal.NewFromInt(125999),
			OriginalPrice: decimal.NewFromInt(145999),
			Image:         "/mangalsutra.png",
			Category:      "mangalsutra",
			Subcategory:   "diamond-mangalsutra",
			Rating:        4.9,
			Reviews:       203,
			Description:   "Diamond studded mangalsutra blending tradition with modern elegance.",
			InStock:       true,
			Featured:      true,
		},
		{
			ProductID:     6,
			Name:          "Oxidized Silver Bangles",
			Price:         decimal.NewFromInt(2999),
			OriginalPrice: decimal.NewFromInt(3999),
			Image:         "/oxide-bangles.png",
			Category:      "oxide",
			Subcategory:   "oxide-bangles",
			Rating:        4.4,
			Reviews:       89,
			Description:   "Antique finish oxidized silver bangles for daily wear.",
			InStock:       false,
			Featured:      false,
		},
	}
}

func seedCategories() []model.Category {
	return []model.Category{
		{
			ID:          "all-jewellery",
			Name:        "All Jewellery",
			Description: "Complete collection of traditional Maharashtrian jewelry",
			Subcategories: []model.Subcategory{
				{ID: "thushi", Name: "Thushi", Description: "Traditional Maharashtrian necklaces"},
				{ID: "earrings", Name: "Earrings", Description: "Elegant traditional earrings"},
				{ID: "bracelets", Name: "Bracelets", Description: "Beautiful traditional bracelets"},
				{ID: "rings", Name: "Rings", Description: "Exquisite traditional rings"},
				{ID: "anklets", Name: "Anklets", Description: "Graceful traditional anklets"},
				{ID: "nath", Name: "Nath", Description: "Traditional nose rings"},
			},
		},
		{
			ID:          "mangalsutra",
			Name:        "Mangalsutra",
			Description: "Sacred marriage jewelry with traditional significance",
			Subcategories: []model.Subcategory{
				{ID: "diamond-mangalsutra", Name: "Diamond", Description: "Diamond studded mangalsutras"},
				{ID: "daily-wear", Name: "Daily Wear", Description: "Comfortable everyday mangalsutras"},
				{ID: "gold-polish", Name: "Gold Polish", Description: "Traditional gold polished designs"},
			},
		},
		{
			ID:          "nath-category",
			Name:        "Nath",
			Description: "Traditional Maharashtrian nose jewelry",
			Subcategories: []model.Subcategory{
				{ID: "gold-nath", Name: "Gold", Description: "Pure gold nath designs"},
				{ID: "moti-nath", Name: "Moti", Description: "Pearl studded nath"},
				{ID: "oxide-nath", Name: "Oxide", Description: "Oxidized silver nath"},
				{ID: "handmade-nath", Name: "Handmade", Description: "Handcrafted traditional nath"},
				{ID: "custom-nath", Name: "Customise", Description: "Custom designed nath"},
			},
		},
		{
			ID:          "oxide",
			Name:        "Oxide",
			Description: "Oxidized silver jewelry with antique finish",
			Subcategories: []model.Subcategory{
				{ID: "oxide-bangles", Name: "Bangles", Description: "Oxidized silver bangles"},
				{ID: "oxide-thushi", Name: "Thushi", Description: "Oxidized silver thushi sets"},
				{ID: "oxide-nath-sub", Name: "Nath", Description: "Oxidized silver nath"},
			},
		},
		{
			ID:          "bridal",
			Name:        "Bridal",
			Description: "Complete bridal jewelry collections",
			Subcategories: []model.Subcategory{
				{ID: "maharashtrian-bridal", Name: "Maharashtrian", Description: "Traditional Maharashtrian bridal sets"},
				{ID: "south-indian-bridal", Name: "South Indian", Description: "South Indian bridal jewelry"},
			},
		},
	}
}
