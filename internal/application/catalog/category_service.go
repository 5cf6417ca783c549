package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/vietcart/backend/internal/domain/catalog"
	"github.com/vietcart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category tree operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create adds a category, optionally under a parent
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*CategoryInfo, error) {
	if input.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
			return nil, shared.NewDomainError("INVALID_PARENT", "Parent category does not exist")
		}
	}

	if existing, err := s.categoryRepo.FindBySlug(ctx, catalog.Slugify(input.Name)); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	category, err := catalog.NewCategory(input.Name, input.ParentID)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create category")
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// Get returns a category by ID
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// GetBySlug returns a category by its URL slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// Tree returns the full category tree, roots first
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryNode, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list categories")
	}

	return buildTree(categories), nil
}

// Update renames a category and optionally moves it in the tree
func (s *CategoryService) Update(ctx context.Context, input UpdateCategoryInput) (*CategoryInfo, error) {
	category, err := s.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := category.Rename(input.Name); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if err := s.checkNoCycle(ctx, category.ID, *input.ParentID); err != nil {
			return nil, err
		}
		if err := category.SetParent(input.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category update", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update category")
	}

	info := toCategoryInfo(category)
	return &info, nil
}

// Delete removes a category. A category still referenced by children or
// products is rejected with a business rule error.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if err == shared.ErrReferenced {
			return err
		}
		s.logger.Error("Failed to delete category", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete category")
	}

	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

// checkNoCycle walks up from the proposed parent and rejects the move when
// the category itself appears among the ancestors
func (s *CategoryService) checkNoCycle(ctx context.Context, categoryID, parentID uuid.UUID) error {
	current := parentID
	for {
		if current == categoryID {
			return shared.NewDomainError("INVALID_PARENT", "Category cannot be moved under its own descendant")
		}

		parent, err := s.categoryRepo.FindByID(ctx, current)
		if err != nil {
			return shared.NewDomainError("INVALID_PARENT", "Parent category does not exist")
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

func buildTree(categories []catalog.Category) []CategoryNode {
	byParent := make(map[uuid.UUID][]*catalog.Category)
	var roots []*catalog.Category
	for i := range categories {
		c := &categories[i]
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	var build func(c *catalog.Category) CategoryNode
	build = func(c *catalog.Category) CategoryNode {
		node := CategoryNode{
			CategoryInfo: toCategoryInfo(c),
			Children:     []CategoryNode{},
		}
		for _, child := range byParent[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	nodes := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, build(root))
	}
	return nodes
}
