package arena

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockLockable is a hand-maintained stand-in for a mockgen-generated
// mock of allox.Lockable, shaped the way `mockgen -source=lockable.go`
// would emit it. Kept by hand since lockable.go has exactly two methods
// and pulling in mockgen as a build-time tool for one interface isn't
// worth the generator dependency.
type MockLockable struct {
	ctrl     *gomock.Controller
	recorder *MockLockableRecorder
}

type MockLockableRecorder struct {
	mock *MockLockable
}

func NewMockLockable(ctrl *gomock.Controller) *MockLockable {
	m := &MockLockable{ctrl: ctrl}
	m.recorder = &MockLockableRecorder{m}
	return m
}

func (m *MockLockable) EXPECT() *MockLockableRecorder { return m.recorder }

func (m *MockLockable) Lock() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Lock")
}

func (r *MockLockableRecorder) Lock() *gomock.Call {
	r.mock.ctrl.T.Helper()
	return r.mock.ctrl.RecordCallWithMethodType(r.mock, "Lock", reflect.TypeOf((*MockLockable)(nil).Lock))
}

func (m *MockLockable) Unlock() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Unlock")
}

func (r *MockLockableRecorder) Unlock() *gomock.Call {
	r.mock.ctrl.T.Helper()
	return r.mock.ctrl.RecordCallWithMethodType(r.mock, "Unlock", reflect.TypeOf((*MockLockable)(nil).Unlock))
}
