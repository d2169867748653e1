// SPDX-License-Identifier: Apache-2.0

/*
Package secblob extracts authentication material from the security blobs that clients send
in SMB Session Setup requests.

A security blob is normally a GSS-API initial context token for SPNEGO (RFC 4178) whose
negTokenInit lists the mechanisms the client offers and carries the first token of the
chosen one.  [Parser.Parse] walks that structure and returns the service ticket of a
Kerberos AP-REQ or the host, user and domain of an NTLMSSP AUTHENTICATE message.  Blobs that
are not SPNEGO, or whose negotiation token is damaged, are searched for a bare NTLMSSP
message.

Parsing is passive and best effort: nothing is verified or decrypted, malformed input
yields a nil result rather than an error, and the parser keeps no state between calls.

Example:

	req := secblob.ParseSecBlob(blob)
	switch {
	case req == nil:
		// nothing recognizable
	case req.Krb != nil:
		fmt.Println("kerberos", req.Krb.Realm, req.Krb.ServiceName())
	case req.Ntlmssp != nil:
		fmt.Printf("ntlm %s\\%s from %s\n", req.Ntlmssp.Domain, req.Ntlmssp.User, req.Ntlmssp.Host)
	}

The smb package locates the blob in SMB1 and SMB2 SESSION_SETUP messages, and the http
package applies the same parser to HTTP Negotiate and NTLM authorization headers.
*/
package secblob
