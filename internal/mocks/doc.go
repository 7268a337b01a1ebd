// Package mocks provides shared test doubles for store, auth and event
// interfaces.
//
// Store mocks embed testify's mock.Mock:
//
//	tasks := new(mocks.MockTaskStore)
//	tasks.On("Delete", mock.Anything, int64(3)).Return(task, nil)
//
// The auth mocks use function fields with default return values instead, so
// handler tests can set only what they need.
package mocks
