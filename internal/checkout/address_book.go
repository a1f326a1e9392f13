package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/event"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
)

type AddressAPI interface {
	ListAddresses(ctx context.Context) ([]model.Address, error)
	CreateAddress(ctx context.Context, addr model.Address) (*model.Address, error)
}

// AddressBook checkout 頁的地址清單
type AddressBook struct {
	api AddressAPI
	bus *event.Bus
}

func NewAddressBook(api AddressAPI, bus *event.Bus) *AddressBook {
	return &AddressBook{api: api, bus: bus}
}

func (b *AddressBook) List(ctx context.Context) ([]model.Address, error) {
	return b.api.ListAddresses(ctx)
}

// Create 欄位不齊時不送出
func (b *AddressBook) Create(ctx context.Context, addr model.Address) (*model.Address, error) {
	if missing := addr.MissingFields(); len(missing) > 0 {
		return nil, client.NewValidationError(missing[0], fmt.Sprintf("Please fill in %s", strings.Join(missing, ", ")))
	}
	created, err := b.api.CreateAddress(ctx, addr)
	if err != nil {
		return nil, err
	}
	b.bus.Publish(event.AddressCreated{AddressID: created.ID.String()})
	return created, nil
}
