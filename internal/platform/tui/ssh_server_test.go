package tui

import (
	"net"
	"path/filepath"
	"testing"
	"time"
)

func TestSSHServerReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() failed: %v", err)
	}
	defer ln.Close()

	cfg := DefaultSSHServerConfig()
	cfg.Address = ln.Addr().String()
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	server, err := NewSSHServer(cfg, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	result := make(chan error, 1)
	go func() { result <- server.ListenAndServe() }()

	select {
	case err := <-result:
		if err == nil {
			t.Error("ListenAndServe() = nil, expected an error for a busy address")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe() kept blocking on a busy address")
	}
}
