package service

import (
	"errors"

	"github.com/quickbite/order-service/internal/entities"
)

var domainErrs = []error{
	entities.ErrOrderNotFound,
	entities.ErrInvalidOrder,
	entities.ErrInvalidTransition,
	entities.ErrNotOrderOwner,
	entities.ErrAdminOnly,
	entities.ErrCancelWindowClosed,
	entities.ErrUserNotFound,
	entities.ErrEmailTaken,
	entities.ErrInvalidCredentials,
}

func isDomainErr(err error) bool {
	for _, domain := range domainErrs {
		if errors.Is(err, domain) {
			return true
		}
	}
	return false
}
