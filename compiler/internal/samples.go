package internal

import "fmt"

type SampleProgram struct {
	Title  string
	Source string
}

var samplePrograms = map[int]SampleProgram{
	1: {
		Title: "Basic if-else with multiple assignments",
		Source: `if (x > 10) {
    y = 5;
    z = y;
} else {
    y = 0;
    z = 3;
}
`,
	},
	2: {
		Title: "Simple equality check",
		Source: `if (a == b) {
    result = 1;
} else {
    result = 0;
}
`,
	},
	3: {
		Title: "Temperature monitoring system",
		Source: `if (temperature >= 30) {
    status = 1;
    alert = 1;
} else {
    status = 0;
    alert = 0;
}`,
	},
	4: {
		Title: "Count and limit checker",
		Source: `if (count < limit) {
    count = 10;
    flag = 1;
} else {
    count = 0;
    flag = 0;
}`,
	},
}

// SampleNumbers returns the sample numbers in order.
func SampleNumbers() []int {
	return []int{1, 2, 3, 4}
}

func Sample(n int) (SampleProgram, error) {
	sample, ok := samplePrograms[n]
	if !ok {
		return SampleProgram{}, fmt.Errorf("no sample program %d, choose 1-%d", n, len(samplePrograms))
	}
	return sample, nil
}
