package upstream

import (
	"context"
	"net/http"

	"github.com/hs-portal-api/internal/domain"
)

// Directory endpoints: users, categories, roles and schools are owned by the
// backend; the portal only relays them for the admin views.

func (c *Client) ListUsers(ctx context.Context, cookie string) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", cookie, nil, "", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, cookie string, in domain.UserInput) (*domain.User, error) {
	var u domain.User
	if err := c.doJSON(ctx, http.MethodPost, "/users", cookie, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, cookie, id string, in domain.UserInput) (*domain.User, error) {
	var u domain.User
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+id, cookie, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, cookie, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, cookie, nil, "", nil)
}

func (c *Client) ListCategories(ctx context.Context, cookie string) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", cookie, nil, "", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) CreateCategory(ctx context.Context, cookie string, in domain.CategoryInput) (*domain.Category, error) {
	var cat domain.Category
	if err := c.doJSON(ctx, http.MethodPost, "/categories", cookie, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, cookie, id string, in domain.CategoryInput) (*domain.Category, error) {
	var cat domain.Category
	if err := c.doJSON(ctx, http.MethodPut, "/categories/"+id, cookie, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, cookie, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, cookie, nil, "", nil)
}

func (c *Client) ListRoles(ctx context.Context, cookie string) ([]domain.Role, error) {
	var roles []domain.Role
	if err := c.do(ctx, http.MethodGet, "/roles", cookie, nil, "", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) ListSchools(ctx context.Context, cookie string) ([]domain.School, error) {
	var schools []domain.School
	if err := c.do(ctx, http.MethodGet, "/schools", cookie, nil, "", &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

func (c *Client) GetSchool(ctx context.Context, cookie, id string) (*domain.School, error) {
	var s domain.School
	if err := c.do(ctx, http.MethodGet, "/schools/"+id, cookie, nil, "", &s); err != nil {
		return nil, err
	}
	return &s, nil
}
