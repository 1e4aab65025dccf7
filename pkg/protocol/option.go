package protocol

import (
	"errors"
	"fmt"
	"strconv"
)

type Option interface {
	OptionName() string
	OptionString() string
	Set(s string) error
}

type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) OptionName() string {
	return opt.Name
}

func (opt *IntOption) OptionString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errors.New("argument out of range")
	}
	*opt.Value = v
	return nil
}

// StringOption rejects values that Validate refuses.
type StringOption struct {
	Name     string
	Value    *string
	Validate func(string) error
}

func (opt *StringOption) OptionName() string {
	return opt.Name
}

func (opt *StringOption) OptionString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "string", *opt.Value)
}

func (opt *StringOption) Set(s string) error {
	if opt.Validate != nil {
		if err := opt.Validate(s); err != nil {
			return err
		}
	}
	*opt.Value = s
	return nil
}
