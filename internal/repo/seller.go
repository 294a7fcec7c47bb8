package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/transport"
)

func (r *GormRepo) GetSeller(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// GetSellerByEmail locates the seller through the contact email, the 1:1
// convention linking a user account to its storefront.
func (r *GormRepo) GetSellerByEmail(ctx context.Context, email string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB.WithContext(ctx).Where("contact_email = ?", email).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *GormRepo) GetSellers(ctx context.Context, offset, limit int) (int64, []models.Seller, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Seller{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Seller, 0, limit)
	if err := r.DB.WithContext(ctx).Model(&models.Seller{}).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateSeller(ctx context.Context, seller *models.Seller) (*models.Seller, error) {
	if err := r.DB.WithContext(ctx).Create(seller).Error; err != nil {
		return nil, err
	}
	return seller, nil
}

// PatchSeller merges the provided fields. A rename also rewrites the
// denormalized seller_name column on the seller's products.
func (r *GormRepo) PatchSeller(ctx context.Context, req transport.PatchSellerRequest, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&seller).Error; err != nil {
			return err
		}

		renamed := false
		if req.Name != nil && *req.Name != seller.Name {
			seller.Name = *req.Name
			renamed = true
		}
		if req.Bio != nil {
			seller.Bio = *req.Bio
		}
		if req.ProfileImage != nil {
			seller.ProfileImage = *req.ProfileImage
		}
		if req.Location != nil {
			seller.Location = *req.Location
		}
		if req.Story != nil {
			seller.Story = *req.Story
		}
		if req.Specialties != nil {
			seller.Specialties = models.StringList(req.Specialties)
		}
		if req.ContactEmail != nil {
			seller.Contact.Email = *req.ContactEmail
		}
		if req.ContactPhone != nil {
			seller.Contact.Phone = *req.ContactPhone
		}
		if req.ContactWebsite != nil {
			seller.Contact.Website = *req.ContactWebsite
		}
		if req.Instagram != nil {
			seller.Social.Instagram = *req.Instagram
		}
		if req.Facebook != nil {
			seller.Social.Facebook = *req.Facebook
		}

		if err := tx.Save(&seller).Error; err != nil {
			return err
		}

		if renamed {
			if err := tx.Model(&models.Product{}).
				Where("seller_id = ?", seller.ID).
				Update("seller_name", seller.Name).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *GormRepo) DeleteSeller(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Seller{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
