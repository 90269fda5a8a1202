package main

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    command
		wantErr bool
	}{
		{name: "up", args: []string{"UP"}, want: command{name: commandUp}},
		{name: "seed", args: []string{"seed"}, want: command{name: commandSeed}},
		{name: "down defaults to one step", args: []string{"down"}, want: command{name: commandDown, steps: 1}},
		{name: "down with steps", args: []string{"down", "3"}, want: command{name: commandDown, steps: 3}},
		{name: "down rejects zero", args: []string{"down", "0"}, wantErr: true},
		{name: "force", args: []string{"force", "1760000100"}, want: command{name: commandForce, version: 1760000100}},
		{name: "force nil version", args: []string{"force", "-1"}, want: command{name: commandForce, version: -1}},
		{name: "force requires version", args: []string{"force"}, wantErr: true},
		{name: "migrate alias", args: []string{"migrate", "1760000000"}, want: command{name: commandGoto, target: 1760000000}},
		{name: "goto rejects negative", args: []string{"goto", "-5"}, wantErr: true},
		{name: "unknown", args: []string{"drop"}, wantErr: true},
		{name: "empty", args: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseCommand(%v)=%+v want %+v", tt.args, got, tt.want)
			}
		})
	}
}
