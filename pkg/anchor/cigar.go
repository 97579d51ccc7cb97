// 10 Mar 2024

package anchor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/pairalign/pkg/band"
)

// Op is one run of a cigar alignment.
type Op struct {
	Kind   byte // 'M' both move, 'D' only the first, 'I' only the second
	Length int
}

// Cigar is one local alignment, as lastz writes it with --format=cigar
//   cigar: a 10 60 + b 12 63 + 4500 M 20 I 1 M 30
// Coordinates count from zero and ends are exclusive.
type Cigar struct {
	Contig1, Contig2 string
	Start1, End1     int
	Start2, End2     int
	Strand1, Strand2 byte
	Score            float64
	Ops              []Op
}

// ParseCigars reads every cigar line from r. Blank lines and lines
// starting with # are skipped. Anything else is an error.
func ParseCigars(r io.Reader) ([]Cigar, error) {
	var ret []Cigar
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for nline := 1; scanner.Scan(); nline++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		c, err := parseCigar(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSubprocess, nline, err)
		}
		ret = append(ret, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading cigar output: %v", ErrSubprocess, err)
	}
	return ret, nil
}

func parseCigar(line string) (c Cigar, err error) {
	f := strings.Fields(line)
	if len(f) < 10 || f[0] != "cigar:" || len(f)%2 != 0 {
		return c, fmt.Errorf("not a cigar line: %q", line)
	}
	atoi := func(s string) int {
		var n int
		if err == nil {
			n, err = strconv.Atoi(s)
		}
		return n
	}
	strand := func(s string) byte {
		if err == nil && s != "+" && s != "-" {
			err = fmt.Errorf("bad strand %q", s)
		}
		return s[0]
	}
	c.Contig1, c.Start1, c.End1, c.Strand1 = f[1], atoi(f[2]), atoi(f[3]), strand(f[4])
	c.Contig2, c.Start2, c.End2, c.Strand2 = f[5], atoi(f[6]), atoi(f[7]), strand(f[8])
	if err != nil {
		return c, err
	}
	if c.Score, err = strconv.ParseFloat(f[9], 64); err != nil {
		return c, err
	}
	for i := 10; i < len(f); i += 2 {
		if len(f[i]) != 1 || strings.IndexByte("MID", f[i][0]) < 0 {
			return c, fmt.Errorf("bad operation %q", f[i])
		}
		n := atoi(f[i+1])
		if err != nil {
			return c, err
		}
		c.Ops = append(c.Ops, Op{Kind: f[i][0], Length: n})
	}
	return c, nil
}

// Pairs walks the alignment and returns the matched positions, with
// trim positions cut off both ends of each match run. A pair is only
// kept if its x+y is bigger than anything before it. The walk must
// finish at the alignment's end coordinates.
func (c *Cigar) Pairs(trim int, pxay *int) ([]band.Anchor, error) {
	var ret []band.Anchor
	j, k := c.Start1, c.Start2
	for _, op := range c.Ops {
		if op.Kind == 'M' {
			for l := trim; l < op.Length-trim; l++ {
				x, y := j+l, k+l
				if x+y > *pxay {
					ret = append(ret, band.Anchor{X: x, Y: y})
					*pxay = x + y
				}
			}
		}
		if op.Kind != 'I' {
			j += op.Length
		}
		if op.Kind != 'D' {
			k += op.Length
		}
	}
	if j != c.End1 || k != c.End2 {
		return nil, fmt.Errorf("%w: cigar walk ended at (%d, %d), alignment says (%d, %d)",
			ErrSubprocess, j, k, c.End1, c.End2)
	}
	return ret, nil
}
