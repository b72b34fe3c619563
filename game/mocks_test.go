package game

import (
	"github.com/stretchr/testify/mock"
)

// --- CodeGenerator ---

type MockCodeGenerator struct {
	mock.Mock
}

func (m *MockCodeGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

// --- LocationCatalog ---

type MockLocationCatalog struct {
	mock.Mock
}

func (m *MockLocationCatalog) Pick() string {
	args := m.Called()
	return args.String(0)
}

// --- Conn ---

type fakeConn struct {
	written [][]byte
	closed  bool
}

func (f *fakeConn) Write(data []byte) error { f.written = append(f.written, data); return nil }
func (f *fakeConn) Read() ([]byte, error)   { select {} }
func (f *fakeConn) Ping() error             { return nil }
func (f *fakeConn) Close(reason string)     { f.closed = true }

// fixedCodes hands out a scripted sequence of room codes.
type fixedCodes struct {
	codes []string
	next  int
}

func (f *fixedCodes) Generate() string {
	code := f.codes[f.next%len(f.codes)]
	f.next++
	return code
}

// fixedCatalog always picks the same location.
type fixedCatalog struct {
	location string
}

func (f fixedCatalog) Pick() string { return f.location }
