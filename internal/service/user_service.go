package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/auth"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

const minPasswordLength = 6

var userNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

// UserService administers back-office accounts.
type UserService struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	guard       authorizer
	bcryptCost  int
}

// NewUserService creates the service.
func NewUserService(users repository.UserRepository, departments repository.DepartmentRepository, guard authorizer, bcryptCost int) *UserService {
	return &UserService{users: users, departments: departments, guard: guard, bcryptCost: bcryptCost}
}

// CreateUserInput carries the fields of a new account.
type CreateUserInput struct {
	UserName   string
	Password   string
	Role       string
	Department string
	SubRole    string
}

// UpdateUserInput replaces role, department and sub-role. An empty Password keeps the old one.
type UpdateUserInput struct {
	Role       string
	Department string
	SubRole    string
	Password   string
}

// CreateUser registers a new account. Only ADMIN may call it.
func (s *UserService) CreateUser(ctx context.Context, caller Caller, input CreateUserInput) (*domain.User, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpCreateUser, "create a user", map[string]any{"user_name": input.UserName}); err != nil {
		return nil, err
	}
	return s.create(ctx, input)
}

func (s *UserService) create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	userName := strings.TrimSpace(input.UserName)
	if !userNamePattern.MatchString(userName) {
		return nil, apperrors.NewValidationError("user_name must be 3-20 letters, digits, '_' or '-'", map[string]any{"user_name": input.UserName})
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}
	assignment, err := access.ValidateAssignment(input.Role, input.Department, input.SubRole)
	if err != nil {
		return nil, err
	}
	dept, err := s.departments.GetByName(ctx, assignment.Department)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "department", map[string]any{"department": assignment.Department})
	}

	if _, err := s.users.GetByUserName(ctx, userName); err == nil {
		return nil, apperrors.NewConflict("user_name already taken", map[string]any{"user_name": userName})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		UserName:       userName,
		PasswordHash:   hash,
		Role:           assignment.Role,
		DepartmentID:   dept.ID,
		DepartmentName: dept.Name,
		SubRole:        assignment.SubRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers pages through accounts.
func (s *UserService) ListUsers(ctx context.Context, caller Caller, page repository.Page) ([]domain.User, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpManageUsers, "list users", nil); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUser fetches one account.
func (s *UserService) GetUser(ctx context.Context, caller Caller, userID string) (*domain.User, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpManageUsers, "view a user", map[string]any{"user_id": userID}); err != nil {
		return nil, err
	}
	if err := requireID(userID, "user_id"); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "user", map[string]any{"user_id": userID})
	}
	return user, nil
}

// UpdateUser changes role, department, sub-role and optionally the password. The user name is immutable.
func (s *UserService) UpdateUser(ctx context.Context, caller Caller, userID string, input UpdateUserInput) (*domain.User, error) {
	if _, err := authorize(ctx, s.guard, caller, access.OpManageUsers, "update a user", map[string]any{"user_id": userID}); err != nil {
		return nil, err
	}
	if err := requireID(userID, "user_id"); err != nil {
		return nil, err
	}
	assignment, err := access.ValidateAssignment(input.Role, input.Department, input.SubRole)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "user", map[string]any{"user_id": userID})
	}
	dept, err := s.departments.GetByName(ctx, assignment.Department)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "department", map[string]any{"department": assignment.Department})
	}

	user.Role = assignment.Role
	user.DepartmentID = dept.ID
	user.DepartmentName = dept.Name
	user.SubRole = assignment.SubRole
	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			return nil, apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
		}
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.NotFoundOr(err, "user", map[string]any{"user_id": userID})
	}
	return user, nil
}

// ListDepartments returns every department for form pickers. Any authenticated caller may list them.
func (s *UserService) ListDepartments(ctx context.Context, caller Caller) ([]domain.Department, error) {
	if caller.Identity == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// EnsureBootstrapAdmin creates the first ADMIN when the user name is free.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context, userName, password string, logger *zap.Logger) error {
	if userName == "" || password == "" {
		return nil
	}
	_, err := s.users.GetByUserName(ctx, userName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	user, err := s.create(ctx, CreateUserInput{
		UserName:   userName,
		Password:   password,
		Role:       string(domain.RoleAdmin),
		Department: string(domain.DepartmentAdmin),
	})
	if err != nil {
		return err
	}
	logger.Info("bootstrap admin created", zap.String("user_id", user.ID), zap.String("user_name", user.UserName))
	return nil
}
