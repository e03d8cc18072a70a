package cmossim_test

import (
	"testing"

	"example.com/cmosdrv/cmos"
	"example.com/cmosdrv/cmossim"
)

func selectReg(t *testing.T, sim *cmossim.Chip, reg byte) {
	t.Helper()
	if err := sim.Out(cmos.CMOS_PORT_INDEX, reg); err != nil {
		t.Fatalf("index write failed: %v", err)
	}
}

func readData(t *testing.T, sim *cmossim.Chip) byte {
	t.Helper()
	v, err := sim.In(cmos.CMOS_PORT_DATA)
	if err != nil {
		t.Fatalf("data read failed: %v", err)
	}
	return v
}

func TestIndexLatchAndNMIBit(t *testing.T) {
	sim := cmossim.New()

	selectReg(t, sim, 0x20|cmos.CMOS_NMI_DISABLE)
	if !sim.NMIDisabled() {
		t.Error("NMI-disable bit not recorded from index write")
	}
	got, err := sim.In(cmos.CMOS_PORT_INDEX)
	if err != nil {
		t.Fatalf("index read failed: %v", err)
	}
	if got != 0x20 {
		t.Errorf("index reads back 0x%02x, want 0x20 (NMI bit masked)", got)
	}

	selectReg(t, sim, 0x20)
	if sim.NMIDisabled() {
		t.Error("NMI-disable state not cleared by plain index write")
	}
}

func TestRegisterCClearsOnRead(t *testing.T) {
	sim := cmossim.New()
	sim.Poke(cmos.RTC_REG_C, cmos.RTC_C_IRQF|cmos.RTC_C_UF)

	selectReg(t, sim, cmos.RTC_REG_C)
	if v := readData(t, sim); v != cmos.RTC_C_IRQF|cmos.RTC_C_UF {
		t.Errorf("first read of C = 0x%02x, want flags", v)
	}
	if v := readData(t, sim); v != 0 {
		t.Errorf("second read of C = 0x%02x, want 0", v)
	}
}

func TestRegisterDValidBitAlwaysSet(t *testing.T) {
	sim := cmossim.New()
	sim.Poke(cmos.RTC_REG_D, 0)

	selectReg(t, sim, cmos.RTC_REG_D)
	if v := readData(t, sim); v&cmos.RTC_D_VRT == 0 {
		t.Errorf("register D = 0x%02x, VRT bit missing", v)
	}
}

func TestUIPReadOnlyOnWrite(t *testing.T) {
	sim := cmossim.New()

	selectReg(t, sim, cmos.RTC_REG_A)
	if err := sim.Out(cmos.CMOS_PORT_DATA, 0x26|cmos.RTC_A_UIP); err != nil {
		t.Fatalf("data write failed: %v", err)
	}
	if v := sim.Peek(cmos.RTC_REG_A); v&cmos.RTC_A_UIP != 0 {
		t.Errorf("UIP bit stored through a data write: 0x%02x", v)
	}
}

func TestUIPScript(t *testing.T) {
	sim := cmossim.New()
	sim.ScriptUIP(true, false)

	selectReg(t, sim, cmos.RTC_REG_A)
	if v := readData(t, sim); v&cmos.RTC_A_UIP == 0 {
		t.Error("first status-A read should show UIP set")
	}
	for i := 0; i < 3; i++ {
		if v := readData(t, sim); v&cmos.RTC_A_UIP != 0 {
			t.Errorf("read %d after script end should show UIP clear", i+2)
		}
	}
}

func TestUnknownPort(t *testing.T) {
	sim := cmossim.New()
	if _, err := sim.In(0x80); err == nil {
		t.Error("expected error for read of unowned port")
	}
	if err := sim.Out(0x3F8, 0); err == nil {
		t.Error("expected error for write to unowned port")
	}
}
