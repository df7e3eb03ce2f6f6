package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"todo/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a single 1-based task number from the first arg.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	return parseTaskNum(args[0])
}

// ParseTaskRefs parses every arg as a task number. Duplicates are dropped,
// keeping first-seen order.
func ParseTaskRefs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}

	seen := make(map[int]bool, len(args))
	nums := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := parseTaskNum(arg)
		if err != nil {
			return nil, err
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		nums = append(nums, n)
	}
	return nums, nil
}

func parseTaskNum(s string) (int, error) {
	if !isAllDigits(s) {
		return 0, fmt.Errorf("invalid task reference: %s", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", s)
	}
	return n, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTasks maps 1-based task numbers onto tasks, using one fresh listing.
// Numbers refer to positions in the full list, completed tasks included.
func ResolveTasks(ctx context.Context, svc service.Service, nums []int) ([]service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]service.Task, 0, len(nums))
	for _, n := range nums {
		if n < 1 || n > len(tasks) {
			return nil, &service.Error{
				Op:   "resolve",
				Kind: service.KindNotFound,
				Err:  fmt.Errorf("task number out of range: %d", n),
			}
		}
		result = append(result, tasks[n-1])
	}
	return result, nil
}
