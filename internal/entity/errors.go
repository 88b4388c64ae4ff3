package entity

import "errors"

var ErrLeadNotFound = errors.New("lead not found")
