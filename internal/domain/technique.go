package domain

import "strings"

// Technique is the craft discipline of a class; each one has its own capacity
type Technique string

const (
	TechniquePottersWheel Technique = "potters_wheel"
	TechniqueHandModeling Technique = "hand_modeling"
	TechniquePainting     Technique = "painting"
)

// AllTechniques lists every known technique in a stable order
var AllTechniques = []Technique{
	TechniquePottersWheel,
	TechniqueHandModeling,
	TechniquePainting,
}

// CapacityPool groups techniques that share studio seats
type CapacityPool string

const (
	PoolPotters  CapacityPool = "potters"
	PoolHandWork CapacityPool = "hand_work"
)

// IsValid returns true if t is one of the known techniques
func (t Technique) IsValid() bool {
	switch t {
	case TechniquePottersWheel, TechniqueHandModeling, TechniquePainting:
		return true
	}
	return false
}

// CapacityPool returns the seat pool the technique draws from.
// Hand modeling and painting share the hand-work tables.
func (t Technique) CapacityPool() CapacityPool {
	if t == TechniquePottersWheel {
		return PoolPotters
	}
	return PoolHandWork
}

// ProductType is the kind of product a booking was made for
type ProductType string

const (
	ProductClassPackage      ProductType = "class_package"
	ProductIntroductoryClass ProductType = "introductory_class"
	ProductCouplesExperience ProductType = "couples_experience"
	ProductSingleClass       ProductType = "single_class"
	ProductGroupClass        ProductType = "group_class"
	ProductOpenStudio        ProductType = "open_studio"
)

// IsValid returns true if p is one of the known product types
func (p ProductType) IsValid() bool {
	switch p {
	case ProductClassPackage, ProductIntroductoryClass, ProductCouplesExperience,
		ProductSingleClass, ProductGroupClass, ProductOpenStudio:
		return true
	}
	return false
}

// DefaultTechnique returns the technique implied by the product type, if any
func (p ProductType) DefaultTechnique() (Technique, bool) {
	switch p {
	case ProductClassPackage, ProductIntroductoryClass, ProductCouplesExperience:
		return TechniquePottersWheel, true
	}
	return "", false
}

// nameKeywords maps product-name substrings to techniques, checked in order
var nameKeywords = []struct {
	keyword   string
	technique Technique
}{
	{keyword: "pintura", technique: TechniquePainting},
	{keyword: "torno", technique: TechniquePottersWheel},
	{keyword: "modelado", technique: TechniqueHandModeling},
}

// TechniqueFromProductName looks for a known keyword in a product name
func TechniqueFromProductName(name string) (Technique, bool) {
	lower := strings.ToLower(name)
	for _, kw := range nameKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.technique, true
		}
	}
	return "", false
}

// ResolveTechnique derives a booking's technique.
// Order: explicit field, product name keyword, product details, product type default.
func ResolveTechnique(b *Booking) (Technique, bool) {
	if b == nil {
		return "", false
	}

	if b.Technique != nil && b.Technique.IsValid() {
		return *b.Technique, true
	}

	if t, ok := TechniqueFromProductName(b.Product.Name); ok {
		return t, true
	}

	if b.Product.Details.Technique != nil && b.Product.Details.Technique.IsValid() {
		return *b.Product.Details.Technique, true
	}

	return b.Product.Type.DefaultTechnique()
}
