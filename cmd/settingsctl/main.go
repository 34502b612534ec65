// Command settingsctl is the demonstration CLI spec.md section 1 calls an
// external collaborator, out of scope for the core engine itself but
// needed to exercise it end-to-end.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avegawanderer/settings"
	"github.com/avegawanderer/settings/internal/demo"
)

var romFile string

func openStore() (*settings.Settings, error) {
	cfg := demo.DefaultConfig()
	root := demo.BuildTree()

	var rom settings.RomDevice
	if romFile != "" {
		mrom, err := settings.OpenMMapRom(romFile, cfg.RomPoolSize)
		if err != nil {
			return nil, err
		}
		rom = mrom
	} else {
		rom = settings.NewRomBuffer(cfg.RomPoolSize)
	}

	return settings.Open(root, rom, cfg)
}

func main() {
	root := &cobra.Command{
		Use:   "settingsctl",
		Short: "Inspect and drive the canonical settings tree",
	}
	root.PersistentFlags().StringVar(&romFile, "rom-file", "", "path to a durable mmap-backed ROM image (default: in-memory)")

	root.AddCommand(dumpCmd(), readCmd(), writeCmd(), resetCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the canonical tree's layout and current values",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			fmt.Printf("ram size: %d  rom size: %d\n", s.RamSize(), s.RomSize())
			fmt.Printf("B0.C0 = %d\n", s.ReadI32(demo.PathB0, demo.PathC0))
			fmt.Printf("B0.C1 = %d\n", s.ReadI32(demo.PathB0, demo.PathC1))

			buf := make([]byte, 20)
			s.ReadBytes(demo.PathB1, 10, buf)
			fmt.Printf("B1[10] = %q\n", buf)

			fmt.Printf("B2 = %d\n", s.ReadI32Path(demo.PathB2))
			return nil
		},
	}
}

func readCmd() *cobra.Command {
	var group, param int
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read an integer leaf under group_B0",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			fmt.Println(s.ReadI32(group, param))
			return nil
		},
	}
	cmd.Flags().IntVar(&group, "group", demo.PathB0, "group index")
	cmd.Flags().IntVar(&param, "param", demo.PathC0, "param index")
	return cmd
}

func writeCmd() *cobra.Command {
	var group, param int
	var value int32
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write an integer leaf under group_B0",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			result := s.WriteI32(group, param, value)
			if result.IsError() {
				return fmt.Errorf("write failed: %s", result)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&group, "group", demo.PathB0, "group index")
	cmd.Flags().IntVar(&param, "param", demo.PathC0, "param index")
	cmd.Flags().Int32Var(&value, "value", 0, "value to write")
	return cmd
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the canonical tree to its declared defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			s.ResetToDefaults()
			return s.FlushAll()
		},
	}
}
