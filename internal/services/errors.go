package services

import "errors"

var (
	ErrStudentNotFound = errors.New("student_not_found")
	ErrInvalidPlan     = errors.New("invalid_plan")
	ErrNoTransactions  = errors.New("no_transactions")
)
