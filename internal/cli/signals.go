package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/renamify/renamify/internal/lock"
)

// installSignalHandler releases the repo-wide lock and exits with code
// 130 on SIGINT/SIGTERM, per spec.md §5's cancellation contract. A second
// signal forces an immediate exit.
func installSignalHandler(root string) chan<- struct{} {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{}, 1)

	go func() {
		select {
		case sig := <-sigChan:
			fmt.Fprintf(os.Stderr, "\nreceived %s, cleaning up...\n", sig)
			lock.NewGuard(root).Release()

			select {
			case <-sigChan:
				os.Exit(130)
			case <-done:
			}
			os.Exit(130)
		case <-done:
		}
	}()

	return done
}
