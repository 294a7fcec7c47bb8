package transport

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateProductRequest struct {
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	Description    string            `json:"description"`
	CategoryID     string            `json:"category_id"`
	SellerID       string            `json:"seller_id"`
	Featured       bool              `json:"featured"`
	InStock        *bool             `json:"in_stock"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
}

type PatchProductRequest struct {
	Name           *string           `json:"name"`
	Price          *float64          `json:"price"`
	Description    *string           `json:"description"`
	CategoryID     *string           `json:"category_id"`
	Featured       *bool             `json:"featured"`
	InStock        *bool             `json:"in_stock"`
	Images         []string          `json:"images"`
	Specifications map[string]string `json:"specifications"`
}

type CreateReviewRequest struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type PatchReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type PatchSellerRequest struct {
	Name           *string  `json:"name"`
	Bio            *string  `json:"bio"`
	ProfileImage   *string  `json:"profileImage"`
	Location       *string  `json:"location"`
	Story          *string  `json:"story"`
	Specialties    []string `json:"specialties"`
	ContactEmail   *string  `json:"contactEmail"`
	ContactPhone   *string  `json:"contactPhone"`
	ContactWebsite *string  `json:"contactWebsite"`
	Instagram      *string  `json:"instagram"`
	Facebook       *string  `json:"facebook"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type PatchCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  uint   `json:"quantity"`
}

type UpdateCartQuantityRequest struct {
	Quantity uint `json:"quantity"`
}
