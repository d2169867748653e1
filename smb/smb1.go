// SPDX-License-Identifier: Apache-2.0

package smb

import "fmt"

const (
	smb1HeaderSize = 32

	smb1CommandSessionSetupAndX byte   = 0x73
	smb1FlagReply               byte   = 0x80
	smb1Flags2ExtendedSecurity  uint16 = 0x0800

	// WordCount of the extended security variants
	smb1SessionSetupRequestWords  = 12
	smb1SessionSetupResponseWords = 4
)

func parseSMB1(msg []byte) (*SessionSetup, error) {
	if len(msg) < smb1HeaderSize+1 {
		return nil, ErrTruncated
	}

	// Header: MS-CIFS 2.2.3.1
	r := newByteReader(msg)
	r.Skip(4)
	command := r.ReadOneByte()
	status := r.ReadUint32()
	flags := r.ReadOneByte()
	flags2 := r.ReadUint16()
	r.Seek(28)
	uid := r.ReadUint16()

	if command != smb1CommandSessionSetupAndX {
		return nil, fmt.Errorf("%w: SMB1 command 0x%02x", ErrNotSessionSetup, command)
	}

	ss := &SessionSetup{
		Dialect:   SMB1,
		Status:    status,
		SessionID: uint64(uid),
	}

	r.Seek(smb1HeaderSize)
	wordCount := r.ReadOneByte()

	var blobLen uint16
	if flags&smb1FlagReply == 0 {
		if wordCount != smb1SessionSetupRequestWords || flags2&smb1Flags2ExtendedSecurity == 0 {
			return nil, fmt.Errorf("%w: request without extended security (word count %d)", ErrNotSessionSetup, wordCount)
		}
		ss.Direction = Request
		// AndX (4) MaxBufferSize (2) MaxMpxCount (2) VcNumber (2) SessionKey (4)
		r.Skip(14)
		blobLen = r.ReadUint16()
	} else {
		if wordCount != smb1SessionSetupResponseWords {
			return nil, fmt.Errorf("%w: response without extended security (word count %d)", ErrNotSessionSetup, wordCount)
		}
		ss.Direction = Response
		// AndX (4) Action (2)
		r.Skip(6)
		blobLen = r.ReadUint16()
	}
	if r.overrun {
		return nil, ErrTruncated
	}

	// the blob starts the data block, after the words and ByteCount
	offset := smb1HeaderSize + 1 + 2*int(wordCount) + 2
	blob, err := securityBuffer(msg, offset, int(blobLen))
	if err != nil {
		return nil, err
	}
	ss.SecurityBlob = blob

	log.Debugf("SMB1 SESSION_SETUP_ANDX %s: uid %d status 0x%08x blob %d bytes", ss.Direction, uid, status, len(blob))
	return ss, nil
}
