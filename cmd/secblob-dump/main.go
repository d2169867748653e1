// SPDX-License-Identifier: Apache-2.0

// secblob-dump reads a packet capture and prints one JSON line for every SMB session setup
// that carries an NTLM or Kerberos credential, and for every server negotiation response.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"
	"github.com/jfjallid/golog"

	secblob "github.com/golang-auth/go-secblob"
	"github.com/golang-auth/go-secblob/smb"
)

var log = golog.Get("")

type userArgs struct {
	file     string
	ports    portList
	debug    bool
	verbose  bool
	fallback bool
}

func handleArgs() *userArgs {
	argv := &userArgs{}
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: %s -r capture.pcap [options]\n", os.Args[0])
		flags.PrintDefaults()
	}
	flags.StringVar(&argv.file, "r", "", "pcap or pcapng file to read (- for stdin)")
	flags.Var(&argv.ports, "port", "TCP port carrying SMB, may be repeated (default 139 and 445)")
	flags.BoolVar(&argv.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&argv.verbose, "v", false, "enable verbose logging")
	flags.BoolVar(&argv.fallback, "ntlm-fallback", false, "try NTLMSSP when an offered Kerberos token does not decode")

	_ = flags.Parse(os.Args[1:])
	if argv.file == "" {
		flags.Usage()
		os.Exit(2)
	}
	if len(argv.ports) == 0 {
		argv.ports = portList{139, 445}
	}

	return argv
}

func setupLogging(argv *userArgs) {
	level := golog.LevelNotice
	switch {
	case argv.debug:
		level = golog.LevelDebug
	case argv.verbose:
		level = golog.LevelInfo
	}

	for _, pkg := range []string{
		"github.com/golang-auth/go-secblob",
		"github.com/golang-auth/go-secblob/smb",
	} {
		golog.Set(pkg, "", level, golog.LstdFlags|golog.Lshortfile, golog.DefaultOutput, golog.DefaultErrOutput)
	}
	log.SetFlags(golog.LstdFlags | golog.Lshortfile)
	log.SetLogLevel(level)
}

// openCapture returns a packet source for a pcap or pcapng stream
func openCapture(r io.Reader) (*gopacket.PacketSource, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("reading capture header: %w", err)
	}

	// pcapng files start with a section header block
	if string(magic) == "\x0a\x0d\x0d\x0a" {
		ng, err := pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			return nil, err
		}
		return gopacket.NewPacketSource(ng, ng.LinkType()), nil
	}

	pr, err := pcapgo.NewReader(br)
	if err != nil {
		return nil, err
	}
	return gopacket.NewPacketSource(pr, pr.LinkType()), nil
}

func run(argv *userArgs, out io.Writer) error {
	in := io.Reader(os.Stdin)
	if argv.file != "-" {
		f, err := os.Open(argv.file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	src, err := openCapture(in)
	if err != nil {
		return err
	}
	src.DecodeOptions = gopacket.DecodeOptions{Lazy: true, NoCopy: true}

	var parserOpts []secblob.ParserOption
	if argv.fallback {
		parserOpts = append(parserOpts, secblob.WithNTLMFallbackOnKerberosFailure())
	}
	parser := secblob.NewParser(parserOpts...)

	enc := json.NewEncoder(out)
	streams := newStreamTable()
	count := 0

	for {
		packet, err := src.NextPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Debugf("skipping undecodable packet: %s", err)
			continue
		}

		tcp, ok := packet.TransportLayer().(*layers.TCP)
		if !ok || len(tcp.Payload) == 0 {
			continue
		}
		if !argv.ports.has(uint16(tcp.SrcPort)) && !argv.ports.has(uint16(tcp.DstPort)) {
			continue
		}
		nl := packet.NetworkLayer()
		if nl == nil {
			continue
		}

		flow := fmt.Sprintf("%s:%d->%s:%d", nl.NetworkFlow().Src(), tcp.SrcPort, nl.NetworkFlow().Dst(), tcp.DstPort)
		ts := packet.Metadata().Timestamp

		for _, msg := range streams.push(flow, tcp.Payload) {
			ss, err := smb.ParseSessionSetup(msg)
			if err != nil {
				continue
			}
			rec := newRecord(parser, ts, flow, ss)
			if rec == nil {
				continue
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
			count++
		}
	}

	log.Infof("%d session setup records", count)
	return nil
}

func main() {
	argv := handleArgs()
	setupLogging(argv)

	if err := run(argv, os.Stdout); err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}
