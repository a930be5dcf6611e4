// Package mocks provides mock implementations for testing the session authority.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockAPI := mocks.NewMockAuthAPI(ctrl)
//	mockAPI.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(&ports.VerifyResult{Authenticated: true}, nil)
package mocks

// Generate mock for AuthAPI interface from internal/ports.
// This creates MockAuthAPI with methods for all AuthAPI interface methods:
// Login, Register, Logout, Verify, VerifyRole
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_api_mock.go github.com/openshelf/gateway/internal/ports AuthAPI
