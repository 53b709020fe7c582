package domain

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrAssetInUse         = errors.New("asset held by auction")
	ErrBidTooLow          = errors.New("bid does not exceed current bid")
	ErrExpired            = errors.New("auction expired")
	ErrNotYetExpired      = errors.New("auction not yet expired")
	ErrNotYetEnded        = errors.New("auction not yet ended")
	ErrAlreadyEnded       = errors.New("auction already ended")
	ErrAlreadyClaimed     = errors.New("asset already claimed")
	ErrInsufficientFunds  = errors.New("insufficient wallet funds")
	ErrInsufficientEscrow = errors.New("insufficient escrow balance")
)
