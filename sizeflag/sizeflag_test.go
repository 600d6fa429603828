package sizeflag

import "testing"

func TestParseSize(t *testing.T) {
	for _, tt := range []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "512", want: 512},
		{in: "4m", want: 4 * 1024 * 1024},
		{in: "4M", want: 4 * 1024 * 1024},
		{in: "128k", want: 128 * 1024},
		{in: "32g", want: 32 * 1024 * 1024 * 1024},
		{in: " 2m ", want: 2 * 1024 * 1024},
		{in: "", wantErr: true},
		{in: "four", wantErr: true},
		{in: "-1m", wantErr: true},
		{in: "4mm", wantErr: true},
	} {
		tt := tt // copy
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("ParseSize(%q) = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEraseBlockSizeMediaPreset(t *testing.T) {
	defer SetMedia("")

	SetMedia("sdhc")
	got, err := EraseBlockSize()
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(4 * 1024 * 1024); got != want {
		t.Errorf("EraseBlockSize() = %d, want %d", got, want)
	}

	SetMedia("betamax")
	if _, err := EraseBlockSize(); err == nil {
		t.Error("EraseBlockSize() with unknown media: expected error")
	}
}

func TestEraseBlockSizeFlag(t *testing.T) {
	defer SetEraseBlockSize("4m")

	SetEraseBlockSize("2m")
	got, err := EraseBlockSize()
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(2 * 1024 * 1024); got != want {
		t.Errorf("EraseBlockSize() = %d, want %d", got, want)
	}
}
