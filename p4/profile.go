package p4

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bitbucket.org/Davydov/aaconv/aamodel"
)

// ProfileFileName is the name of the parameter profile written by P4
// for the first run.
const ProfileFileName = "mcmc_pramsProfile_0.py"

// Group is a named group of model parameters, e.g. 20 "comp"
// parameters.
type Group struct {
	Name string
	N    int
}

// Profile describes parameters written to the sample trace.
type Profile struct {
	// NPrams is the number of parameters for every partition.
	NPrams []int
	// Groups are parameter groups of every partition, might be
	// empty.
	Groups [][]Group
}

// pyToJSON converts a python literal made of lists, tuples, strings
// and numbers to JSON.
func pyToJSON(s string) []byte {
	r := strings.NewReplacer("'", "\"", "(", "[", ")", "]")
	return []byte(r.Replace(s))
}

// ReadProfile parses a P4 parameter profile. It is a python file
// with assignments like:
//
//	nPrams = [211]
//	pramsProfile = [[['comp', 20], ['rMatrix', 190], ['gdasrv', 1]]]
func ReadProfile(rd io.Reader) (*Profile, error) {
	p := &Profile{}
	scanner := bufio.NewScanner(rd)
	found := false
	line := 0
	for scanner.Scan() {
		line++
		l := strings.TrimSpace(scanner.Text())
		if l == "" || l[0] == '#' {
			continue
		}
		eq := strings.IndexByte(l, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(l[:eq])
		value := strings.TrimSpace(l[eq+1:])
		switch key {
		case "nPrams":
			if err := json.Unmarshal(pyToJSON(value), &p.NPrams); err != nil {
				return nil, fmt.Errorf("%w: profile line %d: %v", aamodel.ErrMalformedInput, line, err)
			}
			found = true
		case "pramsProfile":
			var raw [][][]interface{}
			if err := json.Unmarshal(pyToJSON(value), &raw); err != nil {
				return nil, fmt.Errorf("%w: profile line %d: %v", aamodel.ErrMalformedInput, line, err)
			}
			groups, err := parseGroups(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: profile line %d: %v", aamodel.ErrMalformedInput, line, err)
			}
			p.Groups = groups
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: nPrams not found in profile", aamodel.ErrMalformedInput)
	}
	return p, nil
}

func parseGroups(raw [][][]interface{}) ([][]Group, error) {
	groups := make([][]Group, len(raw))
	for part, pgroups := range raw {
		for _, g := range pgroups {
			if len(g) != 2 {
				return nil, fmt.Errorf("group should have name and size, got %v", g)
			}
			name, ok1 := g[0].(string)
			n, ok2 := g[1].(float64)
			if !ok1 || !ok2 || n < 0 || n != float64(int(n)) {
				return nil, fmt.Errorf("incorrect group %v", g)
			}
			groups[part] = append(groups[part], Group{Name: name, N: int(n)})
		}
	}
	return groups, nil
}

// NPartitions returns the number of data partitions.
func (p *Profile) NPartitions() int {
	return len(p.NPrams)
}

// Validate checks that there is exactly one partition and group sizes
// agree with the number of parameters.
func (p *Profile) Validate() error {
	if p.NPartitions() == 0 {
		return fmt.Errorf("%w: no partitions in profile", aamodel.ErrMalformedInput)
	}
	if p.NPartitions() > 1 {
		return aamodel.NewCountError(aamodel.ErrMultiPartitionUnsupported, "partitions", p.NPartitions(), "1")
	}
	if len(p.Groups) > 1 {
		return aamodel.NewCountError(aamodel.ErrMultiPartitionUnsupported, "partition profiles", len(p.Groups), "1")
	}
	if len(p.Groups) == 1 {
		n := 0
		for _, g := range p.Groups[0] {
			n += g.N
		}
		if n != p.NPrams[0] {
			return fmt.Errorf("%w: profile groups have %d parameters, nPrams=%d",
				aamodel.ErrMalformedInput, n, p.NPrams[0])
		}
	}
	return nil
}

// Names returns parameter names of the first partition, e.g.
// comp[0], comp[1], ..., rMatrix[0], ... If there are no groups in
// the profile, parameters are named p[0], p[1], ...
func (p *Profile) Names() []string {
	names := make([]string, 0, p.NPrams[0])
	if len(p.Groups) == 0 {
		for i := 0; i < p.NPrams[0]; i++ {
			names = append(names, fmt.Sprintf("p[%d]", i))
		}
		return names
	}
	for _, g := range p.Groups[0] {
		for i := 0; i < g.N; i++ {
			names = append(names, fmt.Sprintf("%s[%d]", g.Name, i))
		}
	}
	return names
}
