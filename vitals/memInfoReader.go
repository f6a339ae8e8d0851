// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package vitals

import (
	"github.com/c9s/goprocinfo/linux"
)

// DefaultMemInfoLocation is where Linux exposes memory information
const DefaultMemInfoLocation = "/proc/meminfo"

// MemInfoReader extracts memory information from a meminfo-format file.
// The zero value reads DefaultMemInfoLocation.
type MemInfoReader struct {
	// Location overrides the file to read, primarily for testing
	Location string
}

func (reader *MemInfoReader) Read() (*linux.MemInfo, error) {
	if len(reader.Location) > 0 {
		return linux.ReadMemInfo(reader.Location)
	}

	return linux.ReadMemInfo(DefaultMemInfoLocation)
}
