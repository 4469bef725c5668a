package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/shopinsight"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ shopinsight.BrandService = (*BrandService)(nil)

// BrandService implements shopinsight.BrandService using SQLite.
type BrandService struct {
	db *DB
}

// NewBrandService creates a new BrandService.
func NewBrandService(db *DB) *BrandService {
	return &BrandService{db: db}
}

// SaveInsights upserts the brand row keyed by store URL, then deletes and
// reinserts every child collection inside one transaction.
func (s *BrandService) SaveInsights(ctx context.Context, insights *shopinsight.BrandInsights) (*shopinsight.Brand, error) {
	if err := insights.Validate(); err != nil {
		return nil, err
	}

	links, err := json.Marshal(insights.ImportantLinks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode important links: %w", err)
	}
	metadata, err := encodeMetadata(insights.Metadata)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	brand := &shopinsight.Brand{StoreURL: insights.StoreURL, UpdatedAt: now}

	var createdAt string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO brands (id, store_url, privacy_policy, return_refund_policy, about_brand,
			important_links, metadata, extracted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(store_url) DO UPDATE SET
			privacy_policy = excluded.privacy_policy,
			return_refund_policy = excluded.return_refund_policy,
			about_brand = excluded.about_brand,
			important_links = excluded.important_links,
			metadata = excluded.metadata,
			extracted_at = excluded.extracted_at,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`, uuid.New().String(), insights.StoreURL, insights.PrivacyPolicy, insights.ReturnRefundPolicy,
		insights.AboutBrand, string(links), metadata,
		insights.ExtractedAt.UTC().Format(time.RFC3339Nano),
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	).Scan(&brand.ID, &createdAt)
	if err != nil {
		return nil, err
	}
	if brand.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	if err := replaceChildren(ctx, tx, brand.ID, insights); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	brand.Insights = insights
	return brand, nil
}

// FindBrandByID retrieves a brand by ID.
func (s *BrandService) FindBrandByID(ctx context.Context, id string) (*shopinsight.Brand, error) {
	brands, err := s.FindBrands(ctx, shopinsight.BrandFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, shopinsight.Errorf(shopinsight.ENOTFOUND, "brand not found")
	}
	return brands[0], nil
}

// FindBrandByStoreURL retrieves a brand by its store URL.
func (s *BrandService) FindBrandByStoreURL(ctx context.Context, storeURL string) (*shopinsight.Brand, error) {
	brands, err := s.FindBrands(ctx, shopinsight.BrandFilter{StoreURL: &storeURL, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, shopinsight.Errorf(shopinsight.ENOTFOUND, "brand not found")
	}
	return brands[0], nil
}

// FindBrands retrieves brands matching the filter, most recently updated first.
func (s *BrandService) FindBrands(ctx context.Context, filter shopinsight.BrandFilter) ([]*shopinsight.Brand, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, store_url, privacy_policy, return_refund_policy, about_brand,
			important_links, metadata, extracted_at, created_at, updated_at
		FROM brands
		WHERE 1=1
	`)

	var args []any
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.StoreURL != nil {
		query.WriteString(" AND store_url = ?")
		args = append(args, *filter.StoreURL)
	}

	query.WriteString(" ORDER BY updated_at DESC, store_url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []*shopinsight.Brand
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The single connection is free again once rows is drained.
	rows.Close()

	for _, brand := range brands {
		if err := s.loadChildren(ctx, brand.ID, brand.Insights); err != nil {
			return nil, err
		}
	}

	return brands, nil
}

// DeleteBrand permanently removes a brand and all associated records.
func (s *BrandService) DeleteBrand(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return shopinsight.Errorf(shopinsight.ENOTFOUND, "brand not found")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBrand(row rowScanner) (*shopinsight.Brand, error) {
	var (
		brand                             shopinsight.Brand
		insights                          shopinsight.BrandInsights
		links, metadata                   string
		extractedAt, createdAt, updatedAt string
	)
	err := row.Scan(&brand.ID, &brand.StoreURL, &insights.PrivacyPolicy, &insights.ReturnRefundPolicy,
		&insights.AboutBrand, &links, &metadata, &extractedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(links), &insights.ImportantLinks); err != nil {
		return nil, fmt.Errorf("failed to decode important_links: %w", err)
	}
	if insights.ImportantLinks == nil {
		insights.ImportantLinks = shopinsight.Links{}
	}
	if metadata != "" && metadata != "{}" {
		if err := json.Unmarshal([]byte(metadata), &insights.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}

	if insights.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at"); err != nil {
		return nil, err
	}
	if brand.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if brand.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	insights.StoreURL = brand.StoreURL
	brand.Insights = &insights
	return &brand, nil
}

// replaceChildren removes every child row of the brand and inserts the
// collections from insights in order.
func replaceChildren(ctx context.Context, tx *sql.Tx, brandID string, insights *shopinsight.BrandInsights) error {
	for _, table := range []string{"products", "hero_products", "faqs", "social_handles", "contact_info"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE brand_id = ?", brandID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertProducts(ctx, tx, "products", brandID, insights.ProductCatalog); err != nil {
		return err
	}
	if err := insertProducts(ctx, tx, "hero_products", brandID, insights.HeroProducts); err != nil {
		return err
	}

	for i, faq := range insights.FAQs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO faqs (brand_id, position, question, answer) VALUES (?, ?, ?, ?)
		`, brandID, i, faq.Question, faq.Answer); err != nil {
			return fmt.Errorf("failed to insert faq: %w", err)
		}
	}

	for i, h := range insights.SocialHandles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO social_handles (brand_id, position, platform, url, handle) VALUES (?, ?, ?, ?, ?)
		`, brandID, i, string(h.Platform), h.URL, h.Handle); err != nil {
			return fmt.Errorf("failed to insert social handle: %w", err)
		}
	}

	emails, err := encodeStrings(insights.ContactInfo.Emails)
	if err != nil {
		return err
	}
	phones, err := encodeStrings(insights.ContactInfo.PhoneNumbers)
	if err != nil {
		return err
	}
	addresses, err := encodeStrings(insights.ContactInfo.Addresses)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO contact_info (brand_id, emails, phone_numbers, addresses) VALUES (?, ?, ?, ?)
	`, brandID, emails, phones, addresses); err != nil {
		return fmt.Errorf("failed to insert contact info: %w", err)
	}

	return nil
}

func insertProducts(ctx context.Context, tx *sql.Tx, table, brandID string, products []shopinsight.Product) error {
	if len(products) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO `+table+` (brand_id, position, product_id, title, description, price, available, url, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range products {
		if _, err := stmt.ExecContext(ctx, brandID, i, p.ID, p.Title, p.Description, p.Price,
			p.Available, p.URL, p.ImageURL); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

// loadChildren fills the child collections of insights. Collections with
// no rows are returned as empty, never nil.
func (s *BrandService) loadChildren(ctx context.Context, brandID string, insights *shopinsight.BrandInsights) error {
	var err error
	if insights.ProductCatalog, err = s.loadProducts(ctx, "products", brandID); err != nil {
		return err
	}
	if insights.HeroProducts, err = s.loadProducts(ctx, "hero_products", brandID); err != nil {
		return err
	}
	if insights.FAQs, err = s.loadFAQs(ctx, brandID); err != nil {
		return err
	}
	if insights.SocialHandles, err = s.loadSocialHandles(ctx, brandID); err != nil {
		return err
	}
	insights.ContactInfo, err = s.loadContactInfo(ctx, brandID)
	return err
}

func (s *BrandService) loadProducts(ctx context.Context, table, brandID string) ([]shopinsight.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, title, description, price, available, url, image_url
		FROM `+table+`
		WHERE brand_id = ?
		ORDER BY position
	`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []shopinsight.Product{}
	for rows.Next() {
		var p shopinsight.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Available, &p.URL, &p.ImageURL); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *BrandService) loadFAQs(ctx context.Context, brandID string) ([]shopinsight.FAQItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question, answer FROM faqs WHERE brand_id = ? ORDER BY position
	`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	faqs := []shopinsight.FAQItem{}
	for rows.Next() {
		var faq shopinsight.FAQItem
		if err := rows.Scan(&faq.Question, &faq.Answer); err != nil {
			return nil, err
		}
		faqs = append(faqs, faq)
	}
	return faqs, rows.Err()
}

func (s *BrandService) loadSocialHandles(ctx context.Context, brandID string) ([]shopinsight.SocialHandle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT platform, url, handle FROM social_handles WHERE brand_id = ? ORDER BY position
	`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	handles := []shopinsight.SocialHandle{}
	for rows.Next() {
		var (
			h        shopinsight.SocialHandle
			platform string
			handle   sql.NullString
		)
		if err := rows.Scan(&platform, &h.URL, &handle); err != nil {
			return nil, err
		}
		h.Platform = shopinsight.Platform(platform)
		if handle.Valid {
			h.Handle = &handle.String
		}
		handles = append(handles, h)
	}
	return handles, rows.Err()
}

func (s *BrandService) loadContactInfo(ctx context.Context, brandID string) (shopinsight.ContactInfo, error) {
	empty := shopinsight.ContactInfo{Emails: []string{}, PhoneNumbers: []string{}, Addresses: []string{}}

	var emails, phones, addresses string
	err := s.db.QueryRowContext(ctx, `
		SELECT emails, phone_numbers, addresses FROM contact_info WHERE brand_id = ?
	`, brandID).Scan(&emails, &phones, &addresses)
	if err == sql.ErrNoRows {
		return empty, nil
	}
	if err != nil {
		return empty, err
	}

	var info shopinsight.ContactInfo
	if info.Emails, err = decodeStrings(emails, "emails"); err != nil {
		return empty, err
	}
	if info.PhoneNumbers, err = decodeStrings(phones, "phone_numbers"); err != nil {
		return empty, err
	}
	if info.Addresses, err = decodeStrings(addresses, "addresses"); err != nil {
		return empty, err
	}
	return info, nil
}
