// SPDX-FileCopyrightText: 2025 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var accountIDPattern = regexp.MustCompile(`(?i)^([0-9A-F]{4})-([0-9A-F]{8})-([0-9A-F]{4}|XXXX)$`)

// AccountID is an ADS network account address: NNNN-UUUUUUUU-CCCC, where
// NNNN is the node, UUUUUUUU the user on that node and CCCC a checksum.
// XXXX in place of the checksum skips verification.
type AccountID struct {
	node uint16
	user uint32
}

func ParseAccountID(s string) (AccountID, error) {
	m := accountIDPattern.FindStringSubmatch(s)
	if m == nil {
		return AccountID{}, fmt.Errorf("invalid account address format: %q", s)
	}
	node, err := strconv.ParseUint(m[1], 16, 16)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid node in account address: %w", err)
	}
	user, err := strconv.ParseUint(m[2], 16, 32)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid user in account address: %w", err)
	}
	id := AccountID{node: uint16(node), user: uint32(user)}

	checksum := strings.ToUpper(m[3])
	if checksum != "XXXX" && checksum != id.Checksum() {
		return AccountID{}, fmt.Errorf("invalid account address checksum: %q", s)
	}
	return id, nil
}

func IsValidAccountID(s string) bool {
	_, err := ParseAccountID(s)
	return err == nil
}

func (a AccountID) NodeID() uint16 {
	return a.node
}

func (a AccountID) UserID() uint32 {
	return a.user
}

// Checksum is CRC-16/CCITT with initial value 0x1D0F over the big-endian
// node and user bytes.
func (a AccountID) Checksum() string {
	data := []byte{
		byte(a.node >> 8), byte(a.node),
		byte(a.user >> 24), byte(a.user >> 16), byte(a.user >> 8), byte(a.user),
	}
	crc := uint16(0x1D0F)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return fmt.Sprintf("%04X", crc)
}

func (a AccountID) String() string {
	return fmt.Sprintf("%04X-%08X-%s", a.node, a.user, a.Checksum())
}
