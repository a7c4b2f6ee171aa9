// Package anonymize scrubs addresses, hostnames and paths from error
// text so reports can be shared outside the originating site. The
// same input always maps to the same replacement within one
// Anonymizer, so cross references between entries stay readable.
package anonymize

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var (
	ipRe       = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	uncRe      = regexp.MustCompile(`\\\\([\w.-]+)\\([\w$]+)`)
	winPathRe  = regexp.MustCompile(`[A-Za-z]:[/\\][\w/\\.-]+`)
	unixPathRe = regexp.MustCompile(`/[\w/.-]{10,}`)
	serverIPRe = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+$`)
)

// Stats counts what one Anonymizer has replaced so far.
type Stats struct {
	IPs       int `json:"ips_anonymized"`
	Hosts     int `json:"hostnames_anonymized"`
	Filenames int `json:"filenames_anonymized"`
}

// Anonymizer rewrites sensitive tokens to stable placeholders. Not
// safe for concurrent use.
type Anonymizer struct {
	ips       map[string]string
	hosts     map[string]string
	filenames map[string]string
}

func New() *Anonymizer {
	return &Anonymizer{
		ips:       make(map[string]string),
		hosts:     make(map[string]string),
		filenames: make(map[string]string),
	}
}

// IP maps a real address into the 10.0.0.0/24 range, one slot per
// distinct input.
func (a *Anonymizer) IP(ip string) string {
	if strings.HasPrefix(ip, "10.0.0.") {
		return ip
	}
	if got, ok := a.ips[ip]; ok {
		return got
	}
	anon := fmt.Sprintf("10.0.0.%d", len(a.ips)+1)
	a.ips[ip] = anon
	return anon
}

// Hostname maps a server name to server_N.
func (a *Anonymizer) Hostname(host string) string {
	if got, ok := a.hosts[host]; ok {
		return got
	}
	anon := fmt.Sprintf("server_%d", len(a.hosts)+1)
	a.hosts[host] = anon
	return anon
}

// Filename maps a file name to file_N, keeping the extension so the
// media type stays visible.
func (a *Anonymizer) Filename(name string) string {
	if name == "" {
		return name
	}
	if got, ok := a.filenames[name]; ok {
		return got
	}
	anon := fmt.Sprintf("file_%d", len(a.filenames)+1)
	if ext := path.Ext(name); ext != "" {
		anon += ext
	}
	a.filenames[name] = anon
	return anon
}

// Text scrubs one message. Addresses and UNC shares get consistent
// replacements; filesystem paths are reduced to a generic base plus
// the file extension.
func (a *Anonymizer) Text(msg string) string {
	if msg == "" {
		return msg
	}

	for _, m := range uncRe.FindAllStringSubmatch(msg, -1) {
		server, share := m[1], m[2]
		var anonServer string
		if serverIPRe.MatchString(server) {
			anonServer = a.IP(server)
		} else {
			anonServer = a.Hostname(server)
		}
		msg = strings.ReplaceAll(msg, `\\`+server+`\`+share, `\\`+anonServer+`\share`)
	}

	for _, ip := range ipRe.FindAllString(msg, -1) {
		msg = strings.ReplaceAll(msg, ip, a.IP(ip))
	}

	msg = winPathRe.ReplaceAllStringFunc(msg, simplifyPath)
	msg = unixPathRe.ReplaceAllStringFunc(msg, simplifyPath)
	return msg
}

// simplifyPath keeps only a coarse base directory and the file
// extension of a path.
func simplifyPath(p string) string {
	lower := strings.ToLower(p)
	var base string
	switch {
	case strings.Contains(lower, "content"):
		base = "Content"
	case strings.Contains(lower, "project"):
		base = "Projects"
	case strings.Contains(lower, "log"):
		base = "Logs"
	default:
		base = "Data"
	}

	last := p[strings.LastIndexAny(p, `/\`)+1:]
	if ext := path.Ext(last); ext != "" {
		return base + "/.../*" + ext
	}
	return base + "/..."
}

func (a *Anonymizer) Stats() Stats {
	return Stats{
		IPs:       len(a.ips),
		Hosts:     len(a.hosts),
		Filenames: len(a.filenames),
	}
}
