// SPDX-License-Identifier: Apache-2.0

package secblob

// GENERATED CODE: DO NOT EDIT

var mechs = []struct {
	id        Mech
	mech      string
	desc      string
	oidString string
	oid       Oid
}{

	// 1.2.840.48018.1.2.2
	{MECH_MS_KRB5,
		"MECH_MS_KRB5",
		"Microsoft Kerberos 5",
		"1.2.840.48018.1.2.2",
		[]byte{0x2a, 0x86, 0x48, 0x82, 0xf7, 0x12, 0x01, 0x02, 0x02}},

	// 1.2.840.113554.1.2.2
	{MECH_KRB5,
		"MECH_KRB5",
		"Kerberos 5",
		"1.2.840.113554.1.2.2",
		[]byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x12, 0x01, 0x02, 0x02}},

	// 1.2.840.113554.1.2.2.1
	{MECH_KRB5_NAME,
		"MECH_KRB5_NAME",
		"krb5-name",
		"1.2.840.113554.1.2.2.1",
		[]byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x12, 0x01, 0x02, 0x02, 0x01}},

	// 1.2.840.113554.1.2.2.2
	{MECH_KRB5_PRINCIPAL,
		"MECH_KRB5_PRINCIPAL",
		"krb5-principal",
		"1.2.840.113554.1.2.2.2",
		[]byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x12, 0x01, 0x02, 0x02, 0x02}},

	// 1.2.840.113554.1.2.2.3
	{MECH_KRB5_USER_TO_USER,
		"MECH_KRB5_USER_TO_USER",
		"krb5-user-to-user-mech",
		"1.2.840.113554.1.2.2.3",
		[]byte{0x2a, 0x86, 0x48, 0x86, 0xf7, 0x12, 0x01, 0x02, 0x02, 0x03}},

	// 1.3.6.1.4.1.311.2.2.10
	{MECH_NTLMSSP,
		"MECH_NTLMSSP",
		"NTLMSSP",
		"1.3.6.1.4.1.311.2.2.10",
		[]byte{0x2b, 0x06, 0x01, 0x04, 0x01, 0x82, 0x37, 0x02, 0x02, 0x0a}},

	// 1.3.6.1.4.1.311.2.2.30
	{MECH_NEGOEX,
		"MECH_NEGOEX",
		"NegoEx",
		"1.3.6.1.4.1.311.2.2.30",
		[]byte{0x2b, 0x06, 0x01, 0x04, 0x01, 0x82, 0x37, 0x02, 0x02, 0x1e}},
}
