package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsend/pkg/demo"
	"github.com/goliatone/go-formsend/pkg/form"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	asked        []string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.asked = append(s.asked, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestFillMultipart(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"hello", " 12 ", "/tmp/report.json"},
		selectIdx: []int{1},
	}
	var readPath string
	filler := NewFiller(driver, WithReadFile(func(path string) ([]byte, error) {
		readPath = path
		return []byte("data"), nil
	}))

	doc := demo.NewDocument()
	if err := filler.Fill(context.Background(), doc, demo.ModeForm); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	want := map[string][]string{
		"input_string": {"hello"},
		"input_number": {"12"},
		"gender":       {"female"},
	}
	if diff := cmp.Diff(want, doc.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	files := doc.Find(demo.SelectorFile).Files()
	wantFiles := []form.File{{Name: "report.json", ContentType: "application/json", Data: []byte("data")}}
	if diff := cmp.Diff(wantFiles, files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	if readPath != "/tmp/report.json" {
		t.Fatalf("unexpected path %q", readPath)
	}
	wantAsked := []string{demo.LabelText, demo.LabelNumber, demo.LabelGender, demo.LabelFile}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestFillQueryAsksOnlyTextAndNumber(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", ""}}
	doc := demo.NewDocument()
	if err := NewFiller(driver).Fill(context.Background(), doc, demo.ModeQuery); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if diff := cmp.Diff([]string{demo.LabelText, demo.LabelNumber}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if _, ok := doc.CheckedValue("gender"); ok {
		t.Fatalf("gender must stay unselected")
	}
}

func TestFillNoGenderUnchecks(t *testing.T) {
	driver := &stubDriver{inputs: []string{"a", "1"}, selectIdx: []int{2}}
	doc := demo.NewDocument()
	doc.Check("gender", "male")
	if err := NewFiller(driver).Fill(context.Background(), doc, demo.ModeJSON); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if _, ok := doc.CheckedValue("gender"); ok {
		t.Fatalf("expected gender to be cleared")
	}
}

func TestFillPropagatesErrors(t *testing.T) {
	driver := &stubDriver{inputs: []string{"a", "x1"}}
	if err := NewFiller(driver).Fill(context.Background(), demo.NewDocument(), demo.ModeJSON); !errors.Is(err, errNotNumber) {
		t.Fatalf("expected validator error, got %v", err)
	}

	driver = &stubDriver{inputs: []string{"a", "1", "missing.bin"}, selectIdx: []int{0}}
	filler := NewFiller(driver, WithReadFile(func(string) ([]byte, error) { return nil, errors.New("boom") }))
	if err := filler.Fill(context.Background(), demo.NewDocument(), demo.ModeForm); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestChooseMode(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{3}}
	mode, err := NewFiller(driver).ChooseMode(context.Background())
	if err != nil || mode != demo.ModeQuery {
		t.Fatalf("ChooseMode = %q, %v", mode, err)
	}

	driver = &stubDriver{selectIdx: []int{-1}}
	if _, err := NewFiller(driver).ChooseMode(context.Background()); err == nil {
		t.Fatalf("expected error for invalid selection")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("other")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestBlankOrDigits(t *testing.T) {
	for _, ok := range []string{"", "  ", "0", "42", "-3"} {
		if err := blankOrDigits(ok); err != nil {
			t.Fatalf("%q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"-", "4.2", "abc", "1e3"} {
		if err := blankOrDigits(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}
