package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
)

type IAddressService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	Create(ctx context.Context, userID uuid.UUID, address model.Address) (*model.Address, error)
}

type AddressService struct {
	dbDao db.IAddressRepository
}

func NewAddressService(dbDao db.IAddressRepository) *AddressService {
	return &AddressService{dbDao: dbDao}
}

var _ IAddressService = (*AddressService)(nil)

func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	addresses, err := s.dbDao.ListAddressesByUser(ctx, userID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return addresses, nil
}

func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, address model.Address) (*model.Address, error) {
	if missing := address.MissingFields(); len(missing) > 0 {
		return nil, er.New(er.InvalidArgumentCode, fmt.Sprintf("missing fields: %s", strings.Join(missing, ", ")))
	}
	if _, err := mail.ParseAddress(address.Email); err != nil {
		return nil, er.New(er.InvalidArgumentCode, "invalid email")
	}
	address.ID = uuid.New()
	address.UserID = userID
	if err := s.dbDao.CreateAddress(ctx, &address); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return &address, nil
}
