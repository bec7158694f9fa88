package device

import "testing"

func TestIoctlEncoding(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		// kbase GET_GPUPROPS: _IOW(0x80, 0x03, 16-byte struct)
		{"kbase get gpuprops", IOW(0x80, 0x03, 16), 0x40108003},
		// kbase SET_FLAGS: _IOW(0x80, 0x01, 4-byte struct)
		{"kbase set flags", IOW(0x80, 0x01, 4), 0x40048001},
		// kbase VERSION_CHECK_CSF: _IOWR(0x80, 0x34, 4-byte struct)
		{"kbase version check", IOWR(0x80, 0x34, 4), 0xc0048034},
		// KGSL DEVICE_GETPROPERTY: _IOWR(0x09, 0x02, 24-byte struct)
		{"kgsl getproperty", IOWR(0x09, 0x02, 24), 0xc0180902},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %#x, got %#x", tt.want, tt.got)
			}
		})
	}
}

func TestIORDirection(t *testing.T) {
	// Read-only requests set only the read direction bit.
	req := IOR(0x09, 0x01, 8)
	if req>>iocDirShift != iocRead {
		t.Errorf("expected read direction, got %#x", req>>iocDirShift)
	}
}
