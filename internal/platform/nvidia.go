package platform

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

var nvidiaQuery = []string{
	"--query-gpu=index,name,memory.total,driver_version,serial,pci.bus_id",
	"--format=csv,noheader,nounits",
}

const nvidiaVendor = "NVIDIA Corporation"

// NvidiaPlatform reads GPU details from nvidia-smi.
type NvidiaPlatform struct {
	binary string
	run    func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New creates the default platform, backed by nvidia-smi when it is installed.
func New() Platform {
	return &NvidiaPlatform{
		binary: "nvidia-smi",
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Name returns the platform identifier.
func (p *NvidiaPlatform) Name() string { return "nvidia-smi" }

// GPUDetails queries nvidia-smi. A missing binary is not an error.
func (p *NvidiaPlatform) GPUDetails(ctx context.Context) ([]GPUDetail, error) {
	out, err := p.run(ctx, p.binary, nvidiaQuery...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("nvidia-smi: %w", err)
	}
	return parseNvidiaSMI(out)
}

// parseNvidiaSMI parses the CSV output of the nvidia-smi query above.
func parseNvidiaSMI(out []byte) ([]GPUDetail, error) {
	r := csv.NewReader(bytes.NewReader(out))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = len(strings.Split(strings.TrimPrefix(nvidiaQuery[0], "--query-gpu="), ","))

	var details []GPUDetail
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse nvidia-smi output: %w", err)
		}
		index, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("parse nvidia-smi index %q: %w", rec[0], err)
		}
		d := GPUDetail{
			Index:         index,
			Name:          nvidiaValue(rec[1]),
			Vendor:        nvidiaVendor,
			DriverVersion: nvidiaValue(rec[3]),
			SerialNumber:  nvidiaValue(rec[4]),
			BusID:         NormalizeBusID(nvidiaValue(rec[5])),
		}
		if mem := nvidiaValue(rec[2]); mem != "" {
			if d.MemoryMiB, err = strconv.ParseUint(mem, 10, 64); err != nil {
				return nil, fmt.Errorf("parse nvidia-smi memory %q: %w", mem, err)
			}
		}
		details = append(details, d)
	}
	return details, nil
}

func nvidiaValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		// "[N/A]", "[Not Supported]"
		return ""
	}
	return s
}

// NormalizeBusID strips the PCI domain from an address and lowercases it,
// so "00000000:01:00.0" and "0000:01:00.0" compare equal.
func NormalizeBusID(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if strings.Count(addr, ":") == 2 {
		addr = addr[strings.Index(addr, ":")+1:]
	}
	return addr
}
