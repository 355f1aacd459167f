// BLE Raw Data Debug - prints every GoCube notification with its decoded moves.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	gocube "github.com/SeamusWaldron/gocube_animator"
	"github.com/SeamusWaldron/gocube_animator/internal/ble"
	"github.com/SeamusWaldron/gocube_animator/internal/device"
	"github.com/SeamusWaldron/gocube_animator/internal/protocol"
)

func main() {
	fmt.Println("BLE Raw Data Debug")
	fmt.Println("==================")
	fmt.Println()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if len(os.Args) > 1 && os.Args[1] == "-v" {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	client, err := ble.NewClient(log)
	if err != nil {
		fmt.Printf("Failed to enable adapter: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Scanning for GoCube...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	results, err := client.Scan(ctx, 10*time.Second)
	cancel()
	if err != nil {
		fmt.Printf("Scan failed: %v\n", err)
		os.Exit(1)
	}
	target, err := ble.Pick(results, "")
	if err != nil {
		fmt.Println("GoCube not found")
		os.Exit(1)
	}
	fmt.Printf("Found: %s (%s)\n", target.Name, target.UUID)

	client.SetMessageCallback(func(msg *protocol.Message) {
		fmt.Printf("[%s] type=%s payload=%s\n",
			time.Now().Format("15:04:05.000"),
			protocol.MessageTypeName(msg.Type),
			hex.EncodeToString(msg.Payload),
		)
		moves, err := device.Moves(msg)
		if err != nil {
			fmt.Printf("      decode error: %v\n", err)
			return
		}
		if len(moves) > 0 {
			fmt.Printf("      moves: %s\n", gocube.FormatMoves(moves))
		}
	})

	if err := client.ConnectToResult(context.Background(), target); err != nil {
		fmt.Printf("Failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect()

	fmt.Println("Connected! Rotate the cube to see data...")
	fmt.Println("Press Ctrl+C to exit")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nDisconnecting...")
}
