// SPDX-License-Identifier: Apache-2.0

package krb5

import (
	"encoding/hex"
	"testing"

	"github.com/jcmturner/gokrb5/v8/iana"
	"github.com/jcmturner/gokrb5/v8/iana/msgtype"
	"github.com/jcmturner/gokrb5/v8/messages"
	"github.com/jcmturner/gokrb5/v8/test/testdata"
	"github.com/stretchr/testify/assert"
)

func TestUnmarshalAPRep(t *testing.T) {
	t.Parallel()
	var a APRep
	b, err := hex.DecodeString(testdata.MarshaledKRB5ap_rep)
	if err != nil {
		t.Fatalf("Test vector read error: %v", err)
	}
	err = a.Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	assert.Equal(t, iana.PVNO, a.PVNO, "PVNO not as expected")
	assert.Equal(t, msgtype.KRB_AP_REP, a.MsgType, "MsgType is not as expected")
	assert.Equal(t, testdata.TEST_ETYPE, a.EncPart.EType, "Ticket encPart etype not as expected")
	assert.Equal(t, iana.PVNO, a.EncPart.KVNO, "Ticket encPart KVNO not as expected")
	assert.Equal(t, []byte(testdata.TEST_CIPHERTEXT), a.EncPart.Cipher, "Ticket encPart cipher not as expected")
}

func TestAprepMarshal(t *testing.T) {
	t.Parallel()

	want, err := hex.DecodeString(testdata.MarshaledKRB5ap_rep)
	assert.Nil(t, err, "error not expected decoding test data")

	aprep := ktest_make_sample_ap_rep()

	b, err := aprep.Marshal()
	assert.Nil(t, err, "AP-REP marshal error not expected")
	assert.Equal(t, want, b)
}

// a KRB-ERROR in place of the AP-REP comes back as the error
func TestUnmarshalAPRepKRBError(t *testing.T) {
	t.Parallel()

	b, err := hex.DecodeString(testdata.MarshaledKRB5error)
	assert.Nil(t, err, "error not expected decoding test data")

	var a APRep
	err = a.Unmarshal(b)
	assert.Error(t, err)

	var krberr messages.KRBError
	if assert.ErrorAs(t, err, &krberr) {
		assert.Equal(t, int32(SAMPLE_ERROR), krberr.ErrorCode)
	}
}
