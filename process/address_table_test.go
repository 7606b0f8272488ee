package process

import "testing"

func TestAddressTable_Address(t *testing.T) {
	table := NewAddressTable("steam").
		AddSymbolInContext("battle_init", 0x00431000, "steam").
		AddSymbolInContext("battle_init", 0x00430f00, "1998")

	addr, err := table.Address("battle_init")
	if err != nil {
		t.Fatal(err)
	}

	if addr != 0x00431000 {
		t.Fatalf("expected 0x431000 - got 0x%x", addr)
	}

	addr = table.SetContext("1998").AddressOrExit("battle_init")
	if addr != 0x00430f00 {
		t.Fatalf("expected 0x430f00 - got 0x%x", addr)
	}
}

func TestAddressTable_Missing(t *testing.T) {
	table := NewAddressTable("steam")

	_, err := table.Address("battle_init")
	if err == nil {
		t.Fatal("expected an error for a missing context")
	}

	table.AddSymbolInContext("battle_init", 0x00431000, "steam").
		DeleteSymbolFromContext("battle_init", "steam")

	_, err = table.Address("battle_init")
	if err == nil {
		t.Fatal("expected an error for a deleted symbol")
	}

	table.AddSymbolInContext("battle_init", 0x00431000, "steam").
		DeleteContext("steam")

	_, err = table.Address("battle_init")
	if err == nil {
		t.Fatal("expected an error for a deleted context")
	}

	if table.CurrentContext() != "steam" {
		t.Fatalf("unexpected current context %q", table.CurrentContext())
	}
}
