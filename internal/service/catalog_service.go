package service

import (
	"sort"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/catalog"
	"github.com/RoyceAzure/lab/storefront/internal/model"
)

type ProductFilter string

const (
	FilterAll      ProductFilter = "all"
	FilterInStock  ProductFilter = "inStock"
	FilterFeatured ProductFilter = "featured"
)

type ProductSort string

const (
	SortByName   ProductSort = "name"   // 名稱遞增
	SortByPrice  ProductSort = "price"  // 價格遞增
	SortByRating ProductSort = "rating" // 評分遞減
)

// 商品查詢，底層是靜態目錄，全部都是無副作用的純查詢
type CatalogService struct {
	repo *catalog.CatalogRepo
}

func NewCatalogService(repo *catalog.CatalogRepo) *CatalogService {
	return &CatalogService{repo: repo}
}

// GetProductsByCategory 依分類(與可選的子分類)過濾，保留目錄順序
func (s *CatalogService) GetProductsByCategory(categoryID, subcategoryID string) []model.Product {
	var result []model.Product
	for _, p := range s.repo.GetAllProducts() {
		if p.Category != categoryID {
			continue
		}
		if subcategoryID != "" && p.Subcategory != subcategoryID {
			continue
		}
		result = append(result, p)
	}
	return result
}

func (s *CatalogService) GetAllProducts() []model.Product {
	return s.repo.GetAllProducts()
}

func (s *CatalogService) GetProductByID(id int) (*model.Product, error) {
	return s.repo.GetProductByID(id)
}

func (s *CatalogService) GetCategories() []model.Category {
	return s.repo.GetCategories()
}

// FilterProducts 純函式，不認得的filter視同all
func FilterProducts(products []model.Product, filter ProductFilter) []model.Product {
	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		switch filter {
		case FilterInStock:
			if !p.InStock {
				continue
			}
		case FilterFeatured:
			if !p.Featured {
				continue
			}
		}
		result = append(result, p)
	}
	return result
}

// SortProducts 純函式，回傳排序後的新slice，不改動輸入
func SortProducts(products []model.Product, sortBy ProductSort) []model.Product {
	result := make([]model.Product, len(products))
	copy(result, products)

	switch sortBy {
	case SortByName:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Name < result[j].Name
		})
	case SortByPrice:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.LessThan(result[j].Price)
		})
	case SortByRating:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Rating > result[j].Rating
		})
	}
	return result
}
