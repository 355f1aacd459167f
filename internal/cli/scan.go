package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_animator/internal/ble"
	"github.com/SeamusWaldron/gocube_animator/internal/logger"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List GoCube smart cubes in range",
	Long: `Scan for GoCube smart cubes over Bluetooth and print their UUIDs.
Put one of them in device.uuid in the config file to always connect to it.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Println("Scanning for GoCube devices...")

	client, err := ble.NewClient(logger.L())
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Device.ScanTimeout)
	defer cancel()

	results, err := client.Scan(ctx, cfg.Device.ScanTimeout)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No devices found. Make sure the cube is awake and try again.")
		return nil
	}

	for _, r := range results {
		marker := " "
		if r.UUID == cfg.Device.UUID {
			marker = "*"
		}
		fmt.Printf("%s %-20s %s  (RSSI %d)\n", marker, r.Name, r.UUID, r.RSSI)
	}
	return nil
}
