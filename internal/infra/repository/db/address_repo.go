package db

import (
	"context"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
)

type AddressRepo struct {
	dbDao *DbDao
}

func NewAddressRepo(dbDao *DbDao) *AddressRepo {
	return &AddressRepo{dbDao: dbDao}
}

func (s *AddressRepo) CreateAddress(ctx context.Context, address *model.Address) error {
	return s.dbDao.ctx(ctx).Create(address).Error
}

func (s *AddressRepo) GetAddressByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	var address model.Address
	err := s.dbDao.ctx(ctx).First(&address, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *AddressRepo) ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	var addresses []model.Address
	err := s.dbDao.ctx(ctx).Where("user_id = ?", userID).Find(&addresses).Error
	return addresses, err
}
