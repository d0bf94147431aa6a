package tape

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		text    string
		program []int64
	}){
		{"single", "99", []int64{99}},
		{"add", "1,0,0,0,99", []int64{1, 0, 0, 0, 99}},
		{"negative", "1101,100,-1,4,0", []int64{1101, 100, -1, 4, 0}},
		{"newline", "104,1125899906842624,99\n", []int64{104, 1125899906842624, 99}},
		{"spaces", " 1, 2 ,3 ", []int64{1, 2, 3}},
	}

	for _, entry := range table {
		tp, err := Load(entry.text)
		assert.NoError(err, entry.name)
		if err != nil {
			continue
		}
		assert.Equal(len(entry.program), tp.Len(), entry.name)
		assert.Equal(TAPE_CAPACITY, tp.Capacity(), entry.name)
		assert.Equal(entry.program, tp.Program(), entry.name)

		// Round trip without running.
		for n, value := range entry.program {
			cell, err := tp.Read(int64(n))
			assert.NoError(err, entry.name)
			assert.Equal(value, cell, entry.name)
		}

		// Zero extended.
		cell, err := tp.Read(int64(TAPE_CAPACITY - 1))
		assert.NoError(err, entry.name)
		assert.Equal(int64(0), cell, entry.name)
	}
}

func TestLoad_ParseError(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		text  string
		index int
	}){
		{"empty", "", 0},
		{"word", "1,two,3", 1},
		{"trailing", "1,2,", 2},
		{"float", "1.5", 0},
		{"hex", "0x10", 0},
		{"overflow", "1,99999999999999999999", 1},
	}

	for _, entry := range table {
		tp, err := Load(entry.text)
		assert.Nil(tp, entry.name)
		assert.ErrorIs(err, ErrParse, entry.name)

		var token *ErrToken
		if assert.True(errors.As(err, &token), entry.name) {
			assert.Equal(entry.index, token.Index, entry.name)
		}
	}
}

func TestLoadCapacity(t *testing.T) {
	assert := assert.New(t)

	tp, err := LoadCapacity("1,2,3", 3)
	assert.NoError(err)
	assert.Equal(3, tp.Capacity())

	tp, err = LoadCapacity("1,2,3", 2)
	assert.Nil(tp)
	assert.ErrorIs(err, ErrCapacity)

	long := make([]int64, TAPE_CAPACITY+5)
	tp, err = New(long, max(TAPE_CAPACITY, len(long)))
	assert.NoError(err)
	assert.Equal(TAPE_CAPACITY+5, tp.Capacity())
}

func TestLoad_Long(t *testing.T) {
	assert := assert.New(t)

	words := make([]string, TAPE_CAPACITY+1)
	for n := range words {
		words[n] = "0"
	}
	words[0] = "99"

	tp, err := Load(strings.Join(words, ","))
	assert.NoError(err)
	if err != nil {
		return
	}
	assert.Equal(TAPE_CAPACITY+1, tp.Len())
	assert.Equal(TAPE_CAPACITY+1, tp.Capacity())

	value, err := tp.Read(int64(TAPE_CAPACITY))
	assert.NoError(err)
	assert.Equal(int64(0), value)

	_, err = tp.Read(int64(TAPE_CAPACITY + 1))
	assert.ErrorIs(err, ErrOutOfBounds)
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	program, err := Parse("1, -2,3\n")
	assert.NoError(err)
	assert.Equal([]int64{1, -2, 3}, program)

	program, err = Parse("1,,3")
	assert.Nil(program)
	assert.ErrorIs(err, ErrParse)
}

func TestTape_Bounds(t *testing.T) {
	assert := assert.New(t)

	tp, err := LoadCapacity("1,2,3", 4)
	assert.NoError(err)

	for _, address := range []int64{-1, 4, 5, 1 << 40} {
		_, err = tp.Read(address)
		assert.ErrorIs(err, ErrOutOfBounds)
		assert.Equal(ErrAddress(address), err)

		err = tp.Write(address, 7)
		assert.ErrorIs(err, ErrOutOfBounds)
	}

	// Nothing was clamped or wrapped.
	assert.Equal([]int64{1, 2, 3}, tp.Program())
	value, err := tp.Read(3)
	assert.NoError(err)
	assert.Equal(int64(0), value)
}

func TestTape_Write(t *testing.T) {
	assert := assert.New(t)

	tp, err := Load("1,0,0,0,99")
	assert.NoError(err)

	assert.NoError(tp.Write(1, 12))
	assert.NoError(tp.Write(2, 2))
	assert.NoError(tp.Write(9000, -5))

	assert.Equal([]int64{1, 12, 2, 0, 99}, tp.Program())
	value, err := tp.Read(9000)
	assert.NoError(err)
	assert.Equal(int64(-5), value)

	// Writes past the program do not change its length.
	assert.Equal(5, tp.Len())
}

func TestTape_Clone(t *testing.T) {
	assert := assert.New(t)

	tp, err := Load("1,0,0,0,99")
	assert.NoError(err)

	clone := tp.Clone()
	assert.NoError(clone.Write(0, 2))
	assert.NoError(clone.Write(100, 1))

	assert.Equal([]int64{1, 0, 0, 0, 99}, tp.Program())
	assert.Equal([]int64{2, 0, 0, 0, 99}, clone.Program())

	value, _ := tp.Read(100)
	assert.Equal(int64(0), value)
	assert.Equal(tp.Capacity(), clone.Capacity())
}

func TestTape_String(t *testing.T) {
	assert := assert.New(t)

	text := "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	tp, err := Load(text)
	assert.NoError(err)
	assert.Equal(text, tp.String())

	again, err := Load(tp.String())
	assert.NoError(err)
	assert.Equal(tp.Program(), again.Program())
}

func TestTape_Cells(t *testing.T) {
	assert := assert.New(t)

	tp, err := Load("5,6,7")
	assert.NoError(err)

	var addresses []int64
	var values []int64
	for address, value := range tp.Cells() {
		addresses = append(addresses, address)
		values = append(values, value)
	}
	assert.Equal([]int64{0, 1, 2}, addresses)
	assert.Equal([]int64{5, 6, 7}, values)
}
