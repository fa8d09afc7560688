package config

import (
	"reflect"
	"testing"
)

func TestLookupField_KnownKey(t *testing.T) {
	f, ok := LookupField("ui.theme")
	if !ok {
		t.Fatal("expected ui.theme to be in catalog")
	}
	if f.Type != FieldEnum {
		t.Errorf("expected FieldEnum, got %s", f.Type)
	}
	if len(f.Options) != 2 {
		t.Errorf("expected two theme options, got %d", len(f.Options))
	}
}

func TestLookupField_UnknownKey(t *testing.T) {
	_, ok := LookupField("nonexistent.field")
	if ok {
		t.Error("expected unknown key to return false")
	}
}

func TestLookupField_Types(t *testing.T) {
	cases := map[string]FieldType{
		"install.dependencies":    FieldList,
		"install.refresh_command": FieldCommand,
		"install.install_command": FieldCommand,
		"log.level":               FieldEnum,
	}
	for key, want := range cases {
		f, ok := LookupField(key)
		if !ok {
			t.Fatalf("expected %s to be in catalog", key)
		}
		if f.Type != want {
			t.Errorf("%s: expected %s, got %s", key, want, f.Type)
		}
	}
}

func TestLookupField_ReturnsCopy(t *testing.T) {
	f, _ := LookupField("log.level")
	f.Options[0].Value = "mutated"

	again, _ := LookupField("log.level")
	if again.Options[0].Value != "debug" {
		t.Fatalf("registry was mutated through a lookup: %q", again.Options[0].Value)
	}
}

func TestFieldOptionValues(t *testing.T) {
	if got := FieldOptionValues("ui.theme"); !reflect.DeepEqual(got, []string{"latte", "tokyo-night-moon"}) {
		t.Fatalf("unexpected theme values %v", got)
	}
	if got := FieldOptionValues("install.dependencies"); got != nil {
		t.Fatalf("list field should have no options, got %v", got)
	}
	if got := FieldOptionValues("missing"); got != nil {
		t.Fatalf("unknown field should have no options, got %v", got)
	}
}
