package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
)

// CategoryNode is a root category with its direct children.
type CategoryNode struct {
	models.Category
	Children []models.Category `json:"children"`
}

func (svc *LedgerService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category := new(models.Category)
	err := svc.DB.NewSelect().Model(category).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("category", id)
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (svc *LedgerService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, invalid("name", "is required")
	}
	if category.Type != common.CategoryTypeIncome && category.Type != common.CategoryTypeExpense {
		return nil, invalid("type", "must be income or expense")
	}
	if category.ParentID != 0 {
		parent, err := svc.GetCategory(ctx, category.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.Type != category.Type {
			return nil, invalid("parent_id", "subcategories must have the type of their parent")
		}
	}

	q := svc.DB.NewSelect().Model((*models.Category)(nil)).Where("name = ?", category.Name)
	if category.ParentID != 0 {
		q = q.Where("parent_id = ?", category.ParentID)
	} else {
		q = q.Where("parent_id IS NULL")
	}
	exists, err := q.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Message: fmt.Sprintf("category %s already exists at this level", category.Name)}
	}

	category.ID = 0
	category.IsActive = true
	if _, err := svc.DB.NewInsert().Model(category).Exec(ctx); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns root categories with their children, optionally of one type.
func (svc *LedgerService) ListCategories(ctx context.Context, categoryType string) ([]CategoryNode, error) {
	categories := []models.Category{}
	q := svc.DB.NewSelect().Model(&categories).OrderExpr("tc.id ASC")
	if categoryType != "" {
		q = q.Where("tc.type = ?", categoryType)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	nodes := []CategoryNode{}
	index := map[int64]int{}
	for _, category := range categories {
		if category.ParentID == 0 {
			index[category.ID] = len(nodes)
			nodes = append(nodes, CategoryNode{Category: category, Children: []models.Category{}})
		}
	}
	for _, category := range categories {
		if i, ok := index[category.ParentID]; ok && category.ParentID != 0 {
			nodes[i].Children = append(nodes[i].Children, category)
		}
	}
	return nodes, nil
}

// DeleteCategory removes a category without children or transactions.
func (svc *LedgerService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := svc.GetCategory(ctx, id); err != nil {
		return err
	}
	hasChildren, err := svc.DB.NewSelect().Model((*models.Category)(nil)).Where("parent_id = ?", id).Exists(ctx)
	if err != nil {
		return err
	}
	if hasChildren {
		return &ConflictError{Message: fmt.Sprintf("category %d still has subcategories", id)}
	}
	used, err := svc.DB.NewSelect().Model((*models.Transaction)(nil)).Where("category_id = ?", id).Exists(ctx)
	if err != nil {
		return err
	}
	if used {
		return &ConflictError{Message: fmt.Sprintf("category %d is used by transactions", id)}
	}
	_, err = svc.DB.NewDelete().Model((*models.Category)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}
