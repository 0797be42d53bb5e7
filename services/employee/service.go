package employee

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	employeeRepo "admitdesk/database/repository/employee"
	"admitdesk/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const contactCachePrefix = "contact:"

// EmployeeService manages employees and resolves how to reach them.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (*models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	UpdateContact(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Employee, error)
	// GetContact returns employeeRepo.ErrEmployeeNotFound when the employee does not exist.
	GetContact(ctx context.Context, id string) (*models.Contact, error)
}

// DefaultEmployeeService is the production implementation. Cache is optional.
type DefaultEmployeeService struct {
	Repo     employeeRepo.EmployeeRepository
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

func (s *DefaultEmployeeService) CreateEmployee(ctx context.Context, req models.CreateEmployeeRequest) (*models.Employee, error) {
	emp := &models.Employee{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  models.EmployeeContact{Phone: req.Phone},
		FCMToken: req.FCMToken,
	}
	if err := s.Repo.Create(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *DefaultEmployeeService) GetEmployee(ctx context.Context, id string) (*models.Employee, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateContact changes phone and/or push token and drops the cached contact.
func (s *DefaultEmployeeService) UpdateContact(ctx context.Context, id string, req models.UpdateContactRequest) (*models.Employee, error) {
	set := bson.M{}
	if req.Phone != nil {
		set["contact.phone"] = *req.Phone
	}
	if req.FCMToken != nil {
		set["fcmToken"] = *req.FCMToken
	}
	if len(set) > 0 {
		if err := s.Repo.UpdateSetDocument(ctx, id, set); err != nil {
			return nil, err
		}
		s.invalidate(ctx, id)
	}
	return s.Repo.GetByID(ctx, id)
}

// GetContact resolves the employee's phone number and push token, reading
// through the cache when one is configured.
func (s *DefaultEmployeeService) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	if c, ok := s.cached(ctx, id); ok {
		return c, nil
	}

	emp, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contact := &models.Contact{
		EmployeeID: emp.ID,
		Phone:      emp.Contact.Phone,
		FCMToken:   emp.FCMToken,
	}
	s.store(ctx, contact)
	return contact, nil
}

func (s *DefaultEmployeeService) cached(ctx context.Context, id string) (*models.Contact, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, contactCachePrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger().Warn("Contact cache read failed", zap.String("employeeId", id), zap.Error(err))
		}
		return nil, false
	}
	var c models.Contact
	if err := json.Unmarshal(raw, &c); err != nil {
		s.logger().Warn("Discarding corrupt cached contact", zap.String("employeeId", id), zap.Error(err))
		return nil, false
	}
	return &c, true
}

func (s *DefaultEmployeeService) store(ctx context.Context, c *models.Contact) {
	if s.Cache == nil {
		return
	}
	b, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, contactCachePrefix+c.EmployeeID, b, s.CacheTTL).Err(); err != nil {
		s.logger().Warn("Contact cache write failed", zap.String("employeeId", c.EmployeeID), zap.Error(err))
	}
}

func (s *DefaultEmployeeService) invalidate(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, contactCachePrefix+id).Err(); err != nil {
		s.logger().Warn("Contact cache invalidation failed", zap.String("employeeId", id), zap.Error(err))
	}
}

func (s *DefaultEmployeeService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
