// Command dnsclient is a small demonstration front end for the resolve
// package: it sends a single query (or AXFR/IXFR transfer) and prints the
// response, reading its server list either from /etc/resolv.conf or from a
// YAML config file.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	dns "github.com/nullroute-dns/resolve"
)

// rrTypeFlag is a pflag.Value that validates the record-type name against
// the package's type registry as soon as the flag is parsed, instead of
// failing later inside runQuery.
type rrTypeFlag struct{ name string }

func (f *rrTypeFlag) String() string { return f.name }
func (f *rrTypeFlag) Type() string   { return "rrtype" }
func (f *rrTypeFlag) Set(s string) error {
	if _, ok := dns.StringToType[strings.ToUpper(s)]; !ok {
		return fmt.Errorf("unknown record type %q", s)
	}
	f.name = strings.ToUpper(s)
	return nil
}

var _ pflag.Value = (*rrTypeFlag)(nil)

// fileConfig mirrors the handful of resolv.conf settings a caller might
// want to override from a YAML file instead, e.g. when /etc/resolv.conf
// isn't appropriate for the environment the command runs in. Timeout is
// decoded but not applied; the per-query timeout comes from --timeout.
type fileConfig struct {
	Servers []string      `yaml:"servers"`
	Search  []string      `yaml:"search"`
	Port    string        `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

var (
	configPath string
	server     string
	qtype      = &rrTypeFlag{name: "A"}
	timeout    time.Duration
	useTCP     bool
	tsigKey    string
)

// tsigFromFlag parses a dig/nsupdate-style "-y [algo:]name:secret" value
// and returns the key name, the TSIG algorithm and the secret to sign with.
// An empty algo defaults to hmac-sha256.
func tsigFromFlag(flag string) (keyName dns.Name, algo dns.Name, secret dns.ByteField, err error) {
	parts := strings.Split(flag, ":")
	algo = dns.HmacSHA256
	switch len(parts) {
	case 2:
		// name:secret
	case 3:
		a, ok := dns.StringToTsigAlgorithm[strings.ToLower(parts[0])]
		if !ok {
			return dns.Name{}, dns.Name{}, dns.ByteField{}, fmt.Errorf("unknown TSIG algorithm %q", parts[0])
		}
		algo = a
		parts = parts[1:]
	default:
		return dns.Name{}, dns.Name{}, dns.ByteField{}, fmt.Errorf("malformed -y value %q, want [algo:]name:secret", flag)
	}
	keyName, err = dns.NameFromString(dns.Fqdn(parts[0]))
	if err != nil {
		return dns.Name{}, dns.Name{}, dns.ByteField{}, fmt.Errorf("TSIG key name %q: %w", parts[0], err)
	}
	secret, err = dns.BFFromBase64(parts[1])
	if err != nil {
		return dns.Name{}, dns.Name{}, dns.ByteField{}, fmt.Errorf("TSIG secret: %w", err)
	}
	return keyName, algo, secret, nil
}

func main() {
	root := &cobra.Command{
		Use:   "dnsclient",
		Short: "send DNS queries and zone transfers using the resolve package",
	}
	pf := root.PersistentFlags()
	pf.SortFlags = false
	pf.StringVar(&configPath, "config", "", "YAML config file (overrides /etc/resolv.conf)")
	pf.StringVar(&server, "server", "", "nameserver to query, host[:port] (overrides config)")
	pf.DurationVar(&timeout, "timeout", 5*time.Second, "per-query timeout")
	pf.BoolVar(&useTCP, "tcp", false, "use TCP instead of UDP")
	pf.StringVarP(&tsigKey, "tsig", "y", "", "sign the request, [algo:]name:base64secret (algo defaults to hmac-sha256)")

	root.AddCommand(newQueryCmd(), newAxfrCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dnsclient:", err)
		os.Exit(1)
	}
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "send a single query and print the response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), args[0])
		},
	}
	cmd.Flags().VarP(qtype, "type", "t", "record type to query")
	return cmd
}

func newAxfrCmd() *cobra.Command {
	var ixfr bool
	cmd := &cobra.Command{
		Use:   "xfr <zone>",
		Short: "perform an AXFR (or --ixfr) zone transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransfer(cmd.Context(), args[0], ixfr)
		},
	}
	cmd.Flags().BoolVar(&ixfr, "ixfr", false, "perform an IXFR instead of an AXFR")
	return cmd
}

// signWithTsig attaches a TSIG stub to m and wires up c's TsigProvider,
// if -y was given. The Client signs the message itself when it writes it,
// in Exchange and in Transfer alike.
func signWithTsig(c *dns.Client, m *dns.Msg) error {
	if tsigKey == "" {
		return nil
	}
	keyName, algo, secret, err := tsigFromFlag(tsigKey)
	if err != nil {
		return err
	}
	c.TsigProvider = dns.NewTsigSecretProvider(secret)
	m.SetTsig(keyName, algo, 300, time.Now().Unix())
	return nil
}

func resolveAddress(cfg *dns.ClientConfig) string {
	if server != "" {
		if !strings.Contains(server, ":") {
			return server + ":" + cfg.Port
		}
		return server
	}
	return cfg.Server()
}

func loadConfig() (*dns.ClientConfig, error) {
	if configPath == "" {
		return dns.ClientConfigFromFile("/etc/resolv.conf")
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configPath, err)
	}

	cfg := &dns.ClientConfig{
		Servers: fc.Servers,
		Port:    fc.Port,
		Ndots:   1,
	}
	if cfg.Port == "" {
		cfg.Port = "53"
	}
	for _, s := range fc.Search {
		n, err := dns.NameFromString(dns.Fqdn(s))
		if err != nil {
			return nil, fmt.Errorf("search domain %q: %w", s, err)
		}
		cfg.Search = append(cfg.Search, n)
	}
	if len(cfg.Servers) == 0 {
		return nil, fmt.Errorf("config %s: no servers defined", configPath)
	}
	return cfg, nil
}

func runQuery(ctx context.Context, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	qname, err := dns.NameFromString(dns.Fqdn(name))
	if err != nil {
		return fmt.Errorf("invalid name %q: %w", name, err)
	}

	t := dns.StringToType[qtype.String()]

	m := new(dns.Msg)
	m.SetQuestion(qname, t)
	m.RecursionDesired = true
	m.SetEdns0(4096, false)

	c := &dns.Client{Timeout: timeout}
	if useTCP {
		c.Net = "tcp"
	}
	if err := signWithTsig(c, m); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r, rtt, err := c.ExchangeContext(ctx, m, resolveAddress(cfg))
	if err != nil {
		return fmt.Errorf("exchange: %w", err)
	}

	fmt.Println(r.String())
	fmt.Fprintf(os.Stderr, ";; rtt: %s\n", rtt)
	return nil
}

func runTransfer(ctx context.Context, zone string, ixfr bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	zname, err := dns.NameFromString(dns.Fqdn(zone))
	if err != nil {
		return fmt.Errorf("invalid zone %q: %w", zone, err)
	}

	m := new(dns.Msg)
	if ixfr {
		root, _ := dns.NameFromString(".")
		m.SetIxfr(zname, 0, root, root)
	} else {
		m.SetAxfr(zname)
	}

	c := &dns.Client{Timeout: timeout}
	if err := signWithTsig(c, m); err != nil {
		return err
	}
	env, err := c.Transfer(ctx, m, resolveAddress(cfg))
	if err != nil {
		return fmt.Errorf("transfer: %w", err)
	}

	for e := range env {
		if e.Error != nil {
			return fmt.Errorf("transfer: %w", e.Error)
		}
		for _, rr := range e.RR {
			fmt.Println(rr.String())
		}
	}
	return nil
}
