package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// CompanyRepository implementa repository.CompanyRepository.
type CompanyRepository struct{ base }

func (r *CompanyRepository) Create(_ context.Context, c *entity.Company) error {
	return r.write(func(st *state) error {
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepository) GetByID(_ context.Context, id string) (out *entity.Company, err error) {
	err = r.read(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = ptr(c)
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepository) Update(_ context.Context, c *entity.Company) error {
	return r.write(func(st *state) error {
		if _, ok := st.companies[c.ID]; !ok {
			return domain.ErrNotFound
		}
		st.companies[c.ID] = *c
		return nil
	})
}

// UserRepository implementa repository.UserRepository.
type UserRepository struct{ base }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.write(func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepository) GetByID(_ context.Context, id string) (out *entity.User, err error) {
	err = r.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = ptr(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (out *entity.User, err error) {
	err = r.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				out = ptr(u)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) ListByCompany(_ context.Context, companyID string) (out []*entity.User, err error) {
	err = r.read(func(st *state) error {
		for _, u := range st.users {
			if u.CompanyID == companyID {
				out = append(out, ptr(u))
			}
		}
		slices.SortFunc(out, func(a, b *entity.User) int { return strings.Compare(a.Email, b.Email) })
		return nil
	})
	return out, err
}

func (r *UserRepository) CountByRole(_ context.Context, roleID string) (n int, err error) {
	err = r.read(func(st *state) error {
		for _, u := range st.users {
			if u.RoleID == roleID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// RoleRepository implementa repository.RoleRepository.
type RoleRepository struct{ base }

func copyRole(r entity.Role) entity.Role {
	r.Permissions = slices.Clone(r.Permissions)
	return r
}

func (r *RoleRepository) Create(_ context.Context, role *entity.Role) error {
	return r.write(func(st *state) error {
		for _, other := range st.roles {
			if other.CompanyID == role.CompanyID && strings.EqualFold(other.Name, role.Name) {
				return domain.ErrDuplicate
			}
		}
		st.roles[role.ID] = copyRole(*role)
		return nil
	})
}

func (r *RoleRepository) GetByID(_ context.Context, id string) (out *entity.Role, err error) {
	err = r.read(func(st *state) error {
		if role, ok := st.roles[id]; ok {
			out = ptr(copyRole(role))
		}
		return nil
	})
	return out, err
}

func (r *RoleRepository) GetByCompanyAndName(_ context.Context, companyID, name string) (out *entity.Role, err error) {
	err = r.read(func(st *state) error {
		for _, role := range st.roles {
			if role.CompanyID == companyID && strings.EqualFold(role.Name, name) {
				out = ptr(copyRole(role))
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *RoleRepository) ListByCompany(_ context.Context, companyID string) (out []*entity.Role, err error) {
	err = r.read(func(st *state) error {
		for _, role := range st.roles {
			if role.CompanyID == companyID {
				out = append(out, ptr(copyRole(role)))
			}
		}
		slices.SortFunc(out, func(a, b *entity.Role) int { return strings.Compare(a.Name, b.Name) })
		return nil
	})
	return out, err
}

func (r *RoleRepository) Update(_ context.Context, role *entity.Role) error {
	return r.write(func(st *state) error {
		if _, ok := st.roles[role.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range st.roles {
			if other.ID != role.ID && other.CompanyID == role.CompanyID && strings.EqualFold(other.Name, role.Name) {
				return domain.ErrDuplicate
			}
		}
		st.roles[role.ID] = copyRole(*role)
		return nil
	})
}

func (r *RoleRepository) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.roles[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.roles, id)
		return nil
	})
}
