// cmosctl reads and sets the legacy CMOS real-time clock and pokes at the
// general CMOS bytes. It talks to the 0x70/0x71 port pair, which on Linux
// means /dev/port and CAP_SYS_RAWIO.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"

	"example.com/cmosdrv/cmos"
	"example.com/cmosdrv/internal/config"
	"example.com/cmosdrv/port"
)

var (
	cfgPath    = flag.String("config", "", "yaml config file")
	device     = flag.String("device", "/dev/port", "port I/O device node")
	centuryReg = flag.Uint8("century-register", 0, "CMOS address of the century byte (0: derive from --assume-year)")
	assumeYear = flag.Int("assume-year", 0, "reference year for century derivation (0: current host year)")
	spins      = flag.Int("spins", 0, "update-guard poll budget (0: default)")
	retries    = flag.Int("retries", 0, "torn-read retry budget (0: default)")
	keepNMI    = flag.Bool("keep-nmi", false, "leave NMI enabled during register selects")
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: cmosctl [flags] <command> [args]

commands:
  read                 print the clock as ISO 8601
  set-clock [RFC3339]  set the clock (default: host time)
  get <addr>           read one CMOS byte
  put <addr> <value>   write one CMOS byte
  dump                 hex dump of the 128-byte CMOS image
  checksum             show computed vs stored configuration checksum
  fix-checksum         recompute and store the configuration checksum

flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	// Config file supplies defaults; explicit flags win.
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
		if err := config.Validate(cfg); err != nil {
			log.Fatalf("config validation failed: %v", err)
		}
		applyConfig(cfg)
	}

	io, err := port.OpenDevPortPath(*device)
	if err != nil {
		log.Fatalf("port backend: %v", err)
	}
	defer io.Close()

	chip := cmos.New(io)
	chip.SetBudgets(*spins, *retries)
	if *keepNMI {
		chip.SetNMIMask(false)
	}

	if err := run(chip, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

// applyConfig copies config-file values into any flag the command line
// left untouched.
func applyConfig(cfg *config.Config) {
	set := func(name string, apply func()) {
		if !flag.CommandLine.Changed(name) {
			apply()
		}
	}
	if cfg.Device != "" {
		set("device", func() { *device = cfg.Device })
	}
	if cfg.Century.Register != nil {
		set("century-register", func() { *centuryReg = *cfg.Century.Register })
	}
	if cfg.Century.Assume != nil {
		set("assume-year", func() { *assumeYear = *cfg.Century.Assume })
	}
	set("spins", func() { *spins = cfg.Spins })
	set("retries", func() { *retries = cfg.Retries })
	set("keep-nmi", func() { *keepNMI = cfg.KeepNMI })
}

func centuryPolicy() cmos.CenturyPolicy {
	if *centuryReg != 0 {
		return cmos.CenturyRegister(*centuryReg)
	}
	ref := *assumeYear
	if ref == 0 {
		ref = time.Now().Year()
	}
	return cmos.AssumeYear(ref)
}

func run(chip *cmos.Chip, cmd string, args []string) error {
	switch cmd {
	case "read":
		dt, err := chip.ReadClock(centuryPolicy())
		if err != nil {
			return err
		}
		fmt.Println(dt)
		if !dt.IsValid() {
			fmt.Fprintln(os.Stderr, "warning: snapshot is not a valid calendar time; battery may be dead")
		}
		return nil

	case "set-clock":
		t := time.Now()
		if len(args) == 1 {
			var err error
			t, err = time.Parse(time.RFC3339, args[0])
			if err != nil {
				return fmt.Errorf("parse time: %w", err)
			}
		}
		return chip.WriteClock(cmos.FromTime(t), centuryPolicy())

	case "get":
		if len(args) != 1 {
			return fmt.Errorf("usage: get <addr>")
		}
		addr, err := parseByte(args[0])
		if err != nil {
			return err
		}
		v, err := chip.ReadByte(addr)
		if err != nil {
			return err
		}
		fmt.Printf("0x%02x\n", v)
		return nil

	case "put":
		if len(args) != 2 {
			return fmt.Errorf("usage: put <addr> <value>")
		}
		addr, err := parseByte(args[0])
		if err != nil {
			return err
		}
		val, err := parseByte(args[1])
		if err != nil {
			return err
		}
		return chip.WriteByte(addr, val)

	case "dump":
		img, err := chip.Dump()
		if err != nil {
			return err
		}
		for row := 0; row < len(img); row += 16 {
			fmt.Printf("%02x:", row)
			for col := 0; col < 16; col++ {
				fmt.Printf(" %02x", img[row+col])
			}
			fmt.Println()
		}
		return nil

	case "checksum":
		computed, err := chip.Checksum()
		if err != nil {
			return err
		}
		stored, err := chip.StoredChecksum()
		if err != nil {
			return err
		}
		status := "ok"
		if computed != stored {
			status = "MISMATCH"
		}
		fmt.Printf("computed 0x%04x stored 0x%04x %s\n", computed, stored, status)
		return nil

	case "fix-checksum":
		return chip.UpdateChecksum()

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return byte(v), nil
}
