// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/asn1"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/template"
)

// Order must match the Mech constants in mechs.go
var namesToOids = []struct {
	name string
	desc string
	oid  string
}{
	// Windows 2000 shipped Kerberos with this (incorrect) OID
	// (see https://learn.microsoft.com/en-us/openspecs/windows_protocols/ms-spng/211417c4-11ef-46c0-a8fb-f178a51c2088)
	{"MECH_MS_KRB5", "Microsoft Kerberos 5", "1.2.840.48018.1.2.2"},
	{"MECH_KRB5", "Kerberos 5", "1.2.840.113554.1.2.2"},
	{"MECH_KRB5_NAME", "krb5-name", "1.2.840.113554.1.2.2.1"},
	{"MECH_KRB5_PRINCIPAL", "krb5-principal", "1.2.840.113554.1.2.2.2"},
	{"MECH_KRB5_USER_TO_USER", "krb5-user-to-user-mech", "1.2.840.113554.1.2.2.3"},
	{"MECH_NTLMSSP", "NTLMSSP", "1.3.6.1.4.1.311.2.2.10"},
	{"MECH_NEGOEX", "NegoEx", "1.3.6.1.4.1.311.2.2.30"},
}

var codeTemplate = `// SPDX-License-Identifier: Apache-2.0

package secblob

// GENERATED CODE: DO NOT EDIT

var mechs = []struct {
	id        Mech
	mech      string
	desc      string
	oidString string
	oid       Oid
}{
{{range .}}
	// {{.Oid.S}}
	{ {{- .Name}},
		"{{.Name}}",
		"{{.Desc}}",
		"{{.Oid.S}}",
		[]byte{ {{- bytesFormat .Oid.B -}} }},
{{end -}}
}
`

type oid struct {
	S string
	B []byte
}

type tmplParam struct {
	Name string
	Desc string
	Oid  oid
}

func main() {
	output := flag.String("o", "", "output file name")
	flag.Parse()

	params := makeParams()

	funcs := template.FuncMap{
		"bytesFormat": bytesFormat,
	}

	fh := os.Stdout
	var err error
	if *output != "" {
		fh, err = os.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		defer fh.Close()
	}

	var t = template.Must(template.New("code").Funcs(funcs).Parse(codeTemplate))

	if err := t.Execute(fh, params); err != nil {
		log.Fatal(err)
	}
}

func makeParams() []tmplParam {
	params := make([]tmplParam, len(namesToOids))

	// marshal the OIDs to DER and drop the tag and length
	for i, entry := range namesToOids {
		objId := stringToOid(entry.oid)
		enc, err := asn1.Marshal(objId)
		if err != nil {
			panic(fmt.Errorf("parsing %s: %w", objId, err))
		}

		params[i] = tmplParam{
			Name: entry.name,
			Desc: entry.desc,
			Oid:  oid{S: entry.oid, B: enc[2:]},
		}
	}

	return params
}

func bytesFormat(b []byte) string {
	strs := make([]string, len(b))
	for i, s := range b {
		strs[i] = fmt.Sprintf("0x%02x", s)
	}
	return strings.Join(strs, ", ")
}

func stringToOid(s string) asn1.ObjectIdentifier {
	elms := strings.Split(s, ".")

	oid := make(asn1.ObjectIdentifier, len(elms))

	for i, elm := range elms {
		j, err := strconv.ParseUint(elm, 10, 32)
		if err != nil {
			panic(err)
		}

		oid[i] = int(j)
	}

	return oid
}
