// SPDX-License-Identifier: Apache-2.0

package smb

import "fmt"

const (
	smb2HeaderSize = 64

	smb2CommandSessionSetup uint16 = 0x0001
	smb2FlagServerToRedir   uint32 = 0x00000001

	smb2SessionSetupRequestSize  = 25
	smb2SessionSetupResponseSize = 9
)

func parseSMB2(msg []byte) (*SessionSetup, error) {
	if len(msg) < smb2HeaderSize {
		return nil, ErrTruncated
	}

	// Header: MS-SMB2 2.2.1
	r := newByteReader(msg)
	r.Skip(8) // ProtocolId, StructureSize, CreditCharge
	status := r.ReadUint32()
	command := r.ReadUint16()
	r.Skip(2) // CreditRequest/CreditResponse
	flags := r.ReadUint32()
	r.Seek(40)
	sessionID := r.ReadUint64()

	if command != smb2CommandSessionSetup {
		return nil, fmt.Errorf("%w: SMB2 command 0x%04x", ErrNotSessionSetup, command)
	}

	ss := &SessionSetup{
		Dialect:   SMB2,
		Status:    status,
		SessionID: sessionID,
	}

	r.Seek(smb2HeaderSize)
	structSize := r.ReadUint16()

	var secBufOffset, secBufLen uint16
	if flags&smb2FlagServerToRedir == 0 {
		// StructureSize (2) Flags (1) SecurityMode (1) Capabilities (4) Channel (4)
		// SecurityBufferOffset (2) SecurityBufferLength (2) PreviousSessionId (8)
		if structSize != smb2SessionSetupRequestSize {
			return nil, fmt.Errorf("%w: request structure size %d", ErrNotSessionSetup, structSize)
		}
		ss.Direction = Request
		r.Skip(10)
		secBufOffset = r.ReadUint16()
		secBufLen = r.ReadUint16()
	} else {
		// StructureSize (2) SessionFlags (2) SecurityBufferOffset (2) SecurityBufferLength (2)
		if structSize != smb2SessionSetupResponseSize {
			return nil, fmt.Errorf("%w: response structure size %d", ErrNotSessionSetup, structSize)
		}
		ss.Direction = Response
		r.Skip(2)
		secBufOffset = r.ReadUint16()
		secBufLen = r.ReadUint16()
	}
	if r.overrun {
		return nil, ErrTruncated
	}

	blob, err := securityBuffer(msg, int(secBufOffset), int(secBufLen))
	if err != nil {
		return nil, err
	}
	ss.SecurityBlob = blob

	log.Debugf("SMB2 SESSION_SETUP %s: session 0x%x status 0x%08x blob %d bytes", ss.Direction, sessionID, status, len(blob))
	return ss, nil
}
