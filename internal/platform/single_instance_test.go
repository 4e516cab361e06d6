package platform

import (
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireSingleInstance(t *testing.T) {
	name := "wodtimer-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() {
		activated <- struct{}{}
	})

	_, err = AcquireSingleInstance(name)
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second acquire err = %v, want ErrAlreadyRunning", err)
	}
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := AcquireSingleInstance(name)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestActivationIgnoresUnknownRequests(t *testing.T) {
	guard, err := AcquireSingleInstance("wodtimer-test-" + t.Name())
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	called := make(chan struct{}, 1)
	guard.OnActivate(func() { called <- struct{}{} })

	conn, err := net.Dial("tcp", guard.Address())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	_, _ = conn.Write([]byte("hello\n"))
	_ = conn.Close()

	select {
	case <-called:
		t.Fatal("activation callback ran for an unknown request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestReleaseNilGuard(t *testing.T) {
	var guard *InstanceGuard
	if err := guard.Release(); err != nil {
		t.Errorf("Release() = %v", err)
	}
	if guard.Address() != "" {
		t.Errorf("Address() = %q", guard.Address())
	}
}

func TestPortFromNameInRange(t *testing.T) {
	for _, name := range []string{"", "WODTimer", "another app"} {
		port := portFromName(name)
		if port < 20000 || port > 39999 {
			t.Errorf("portFromName(%q) = %d", name, port)
		}
		if port != portFromName(name) {
			t.Errorf("portFromName(%q) is not stable", name)
		}
	}
}

func TestConfigDirUsesAppName(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := ConfigDir("WODTimer")
	if err != nil {
		t.Skipf("no user dir: %v", err)
	}
	if filepath.Base(dir) != "WODTimer" {
		t.Errorf("dir = %q", dir)
	}
}
