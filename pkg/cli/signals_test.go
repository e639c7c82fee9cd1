package cli

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func TestSetupSignalHandler(t *testing.T) {
	ctx := SetupSignalHandler()

	// Context should not be cancelled initially
	select {
	case <-ctx.Done():
		t.Error("Context should not be cancelled initially")
	default:
		// Expected
	}

	if ctx.Done() == nil {
		t.Error("Context should have a Done channel")
	}
}

func TestSetupSignalHandlerCancelsOnSignal(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping signal test in short mode")
	}

	ctx := SetupSignalHandler()

	go func() {
		time.Sleep(50 * time.Millisecond)
		p, _ := os.FindProcess(os.Getpid())
		_ = p.Signal(syscall.SIGTERM)
	}()

	select {
	case <-ctx.Done():
		// Expected
	case <-time.After(2 * time.Second):
		t.Skip("Signal not received within timeout (this is okay)")
	}
}

func TestWaitForShutdown(t *testing.T) {
	sigChan := WaitForShutdown()

	if sigChan == nil {
		t.Fatal("WaitForShutdown() returned nil channel")
	}

	// Channel should not have any signals initially
	select {
	case <-sigChan:
		t.Error("Signal channel should be empty initially")
	case <-time.After(10 * time.Millisecond):
		// Expected
	}
}

func TestWaitForShutdownReceivesSignal(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping signal test in short mode")
	}

	sigChan := WaitForShutdown()

	// Send the signal to our own process. Delivery is fanned out to every
	// registered channel, so this does not kill the test binary.
	go func() {
		time.Sleep(50 * time.Millisecond)
		p, _ := os.FindProcess(os.Getpid())
		_ = p.Signal(syscall.SIGTERM)
	}()

	select {
	case sig := <-sigChan:
		if sig != syscall.SIGTERM {
			t.Errorf("Expected SIGTERM, got %v", sig)
		}
	case <-time.After(2 * time.Second):
		t.Skip("Signal not received within timeout (this is okay)")
	}
}

func TestContextCancellationFlow(t *testing.T) {
	// Typical server shutdown flow: a goroutine parked on ctx.Done.
	ctx := SetupSignalHandler()

	serverDone := make(chan bool)

	go func() {
		<-ctx.Done()
		serverDone <- true
	}()

	select {
	case <-serverDone:
		t.Error("Server should not be done yet")
	case <-time.After(10 * time.Millisecond):
		// Expected
	}
}
