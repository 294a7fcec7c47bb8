package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// StringList is stored as a JSON text column so the same model works on
// postgres and on the sqlite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	Name         string    `gorm:"not null"                 json:"name"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Provider     string    `json:"provider,omitempty"`
	Role         string    `gorm:"not null;default:buyer"   json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type SellerContact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

type SellerSocial struct {
	Instagram string `gorm:"column:instagram_handle" json:"instagram"`
	Facebook  string `gorm:"column:facebook_page"    json:"facebook"`
}

type Seller struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string        `gorm:"not null"             json:"name"`
	Bio          string        `json:"bio"`
	ProfileImage string        `json:"profileImage"`
	Location     string        `json:"location"`
	JoinDate     string        `json:"joinDate"`
	Rating       float64       `json:"rating"`
	TotalReviews int           `json:"totalReviews"`
	TotalSales   int           `json:"totalSales"`
	Specialties  StringList    `gorm:"type:text" json:"specialties"`
	Story        string        `json:"story"`
	Contact      SellerContact `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`
	Social       SellerSocial  `gorm:"embedded"             json:"socialMedia"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (s *Seller) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null"             json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `json:"description"`

	// Category and SellerName are denormalized copies maintained by the repo
	// whenever the referenced entity is renamed.
	Category   string    `gorm:"not null"   json:"category"`
	CategoryID uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	SellerID   uuid.UUID `gorm:"type:uuid;index" json:"seller_id"`
	SellerName string    `json:"seller_name"`

	Rating   float64 `json:"rating"`
	Featured bool    `gorm:"default:false" json:"featured"`
	InStock  bool    `gorm:"default:true"  json:"in_stock"`

	Images         []ProductImage         `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	Specifications []ProductSpecification `gorm:"constraint:OnDelete:CASCADE" json:"specifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProductImage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_image" json:"product_id"`
	ImageURL  string    `gorm:"not null;uniqueIndex:idx_product_image"  json:"image_url"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductSpecification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_product_spec" json:"product_id"`
	SpecKey   string    `gorm:"not null;uniqueIndex:idx_product_spec"  json:"spec_key"`
	SpecValue string    `gorm:"not null" json:"spec_value"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user" json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// CartItem backs the persistent cart store. Name and price are copied from
// the product at add time, matching what the cart shows to the buyer.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  uint      `gorm:"default:1;check:quantity>0" json:"quantity"`
}
