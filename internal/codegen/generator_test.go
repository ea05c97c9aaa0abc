package codegen

import (
	"strings"
	"testing"

	"github.com/cwbudde/minijavac/internal/lexer"
	"github.com/cwbudde/minijavac/internal/parser"
	"github.com/cwbudde/minijavac/internal/semantic"
	"github.com/gkampitakis/go-snaps/snaps"
)

func generateSource(t *testing.T, src string) map[string]string {
	t.Helper()
	project, err := parser.New(lexer.Tokenize(src)).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := semantic.NewAnalyzer(project)
	if err := a.Analyze(); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	out, err := NewGenerator(project, a.Registry()).GenerateAll()
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	return out
}

const inheritanceProgram = `
class Animal {
	int legs;
	int countLegs() {
		return legs;
	}
}
class Dog extends Animal {
	int bark() {
		return this.countLegs();
	}
}
class Main {
	public static void main() {
		Dog d;
		d = new Dog();
		int n;
		n = d.bark();
		System.out.println(n);
	}
}
`

func TestGenerateAllProducesExpectedFileSet(t *testing.T) {
	out := generateSource(t, inheritanceProgram)
	want := []string{
		"__int_array.h", "__int_array.c",
		"Animal.h", "Animal.c",
		"Dog.h", "Dog.c",
		"Main.h", "Main.c",
		"CMakeLists.txt",
	}
	for _, name := range want {
		if _, ok := out[name]; !ok {
			t.Errorf("expected generated file %s, got file set %v", name, keysOf(out))
		}
	}
	if len(out) != len(want) {
		t.Errorf("len(out) = %d, want %d (got %v)", len(out), len(want), keysOf(out))
	}
}

func keysOf(m map[string]string) []string {
	var ks []string
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}

func TestGenerateHeaderEmbedsParentAndOwnFunctionPointerSlot(t *testing.T) {
	out := generateSource(t, inheritanceProgram)

	dogHeader := out["Dog.h"]
	if !strings.Contains(dogHeader, "Animal super;") {
		t.Errorf("Dog.h should embed the parent struct by value:\n%s", dogHeader)
	}
	if !strings.Contains(dogHeader, "(*$_function_bark)(void* $this);") {
		t.Errorf("Dog.h should declare its own function-pointer slot for bark:\n%s", dogHeader)
	}
	if strings.Contains(dogHeader, "$_function_countLegs") {
		t.Errorf("Dog.h should not redeclare the inherited countLegs slot:\n%s", dogHeader)
	}

	animalHeader := out["Animal.h"]
	if !strings.Contains(animalHeader, "(*$_function_countLegs)(void* $this);") {
		t.Errorf("Animal.h should declare the countLegs slot it introduces:\n%s", animalHeader)
	}
}

func TestGenerateAllocatorInitializesInheritedFieldsAndInstallsMethodPointers(t *testing.T) {
	out := generateSource(t, inheritanceProgram)
	dogSource := out["Dog.c"]

	if !strings.Contains(dogSource, "Dog* $_new_Dog(void) {") {
		t.Errorf("expected Dog's allocator signature:\n%s", dogSource)
	}
	if !strings.Contains(dogSource, "obj->super.legs = 0;") {
		t.Errorf("expected Dog's allocator to zero-init the inherited legs field through super:\n%s", dogSource)
	}
	if !strings.Contains(dogSource, "obj->super.$_function_countLegs = &Animal_countLegs;") {
		t.Errorf("expected Dog's allocator to install the inherited countLegs function pointer in Animal's slot:\n%s", dogSource)
	}
	if !strings.Contains(dogSource, "obj->$_function_bark = &Dog_bark;") {
		t.Errorf("expected Dog's allocator to install its own bark function pointer:\n%s", dogSource)
	}
}

func TestGenerateMethodCallLowersThroughFunctionPointerSlot(t *testing.T) {
	out := generateSource(t, inheritanceProgram)
	dogSource := out["Dog.c"]
	if !strings.Contains(dogSource, "super->super.$_function_countLegs(super)") {
		t.Errorf("expected this.countLegs() to dispatch through the countLegs slot on super:\n%s", dogSource)
	}
}

func TestGenerateMainLowersSystemOutPrintlnToPrintf(t *testing.T) {
	out := generateSource(t, inheritanceProgram)
	mainSource := out["Main.c"]
	if !strings.Contains(mainSource, "int main(void) {") {
		t.Errorf("expected Main.c to declare int main(void):\n%s", mainSource)
	}
	if !strings.Contains(mainSource, `printf("%d\n", n);`) {
		t.Errorf("expected System.out.println(n) to lower to a printf call:\n%s", mainSource)
	}
}

const overrideProgram = `
class Animal {
	int speak() {
		return 0;
	}
}
class Dog extends Animal {
	int speak() {
		return 1;
	}
}
class Main {
	public static void main() {
		Animal a;
		a = new Dog();
		int n;
		n = a.speak();
	}
}
`

func TestGenerateOverrideReusesIntroducingSlot(t *testing.T) {
	out := generateSource(t, overrideProgram)

	dogHeader := out["Dog.h"]
	if strings.Contains(dogHeader, "$_function_speak") {
		t.Errorf("Dog.h should not declare a new speak slot, since it overrides Animal's:\n%s", dogHeader)
	}

	dogSource := out["Dog.c"]
	if !strings.Contains(dogSource, "obj->super.$_function_speak = &Dog_speak;") {
		t.Errorf("expected Dog's allocator to install its own override into Animal's introducing slot:\n%s", dogSource)
	}
}

const fieldsProgram = `
class Box {
	int capacity;
	boolean sealed;
	int[] items;
	Box next;
}
class Main {
	public static void main() {
		Box b;
		b = new Box();
	}
}
`

func TestGenerateFieldsOfEachPrimitiveKindLowerToCTypes(t *testing.T) {
	out := generateSource(t, fieldsProgram)
	header := out["Box.h"]

	for _, want := range []string{
		"int capacity;",
		"bool sealed;",
		"__int_array* items;",
		"Box* next;",
	} {
		if !strings.Contains(header, want) {
			t.Errorf("expected Box.h to declare %q:\n%s", want, header)
		}
	}

	source := out["Box.c"]
	for _, want := range []string{
		"obj->capacity = 0;",
		"obj->sealed = false;",
		"obj->items = NULL;",
		"obj->next = NULL;",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("expected Box.c's allocator to default-init %q:\n%s", want, source)
		}
	}
}

const arrayProgram = `
class Main {
	public static void main() {
		int[] data;
		data = new int[10];
		int n;
		n = data.length;
		int first;
		first = data[0];
		data[1] = 42;
	}
}
`

func TestGenerateArrayAllocationLengthAndIndexing(t *testing.T) {
	out := generateSource(t, arrayProgram)
	mainSource := out["Main.c"]

	if !strings.Contains(mainSource, "__int_array* $_t_0 = $_new___int_array(10);") {
		t.Errorf("expected array allocation to call the fixed allocator:\n%s", mainSource)
	}
	if !strings.Contains(mainSource, "n = data->length;") {
		t.Errorf("expected .length to lower to ->length:\n%s", mainSource)
	}
	if !strings.Contains(mainSource, "first = data->data[0];") {
		t.Errorf("expected array indexing to lower to ->data[index]:\n%s", mainSource)
	}
	if !strings.Contains(mainSource, "data->data[1] = 42;") {
		t.Errorf("expected array index assignment to lower the same way:\n%s", mainSource)
	}
}

const castProgram = `
class Animal { }
class Dog extends Animal { }
class Main {
	public static void main() {
		Animal a;
		a = new Animal();
		Dog d;
		d = (Dog) a;
	}
}
`

func TestGenerateCastEmitsCStyleCast(t *testing.T) {
	out := generateSource(t, castProgram)
	mainSource := out["Main.c"]
	if !strings.Contains(mainSource, "Dog* $_t_1 = (Dog*) a;") {
		t.Errorf("expected the cast to lower to a C-style pointer cast:\n%s", mainSource)
	}
}

const shiftProgram = `
class Main {
	public static void main() {
		int x;
		x = 0 - 8;
		int y;
		y = x >>> 2;
	}
}
`

func TestGenerateUnsignedShiftLowersToExplicitUnsignedCast(t *testing.T) {
	out := generateSource(t, shiftProgram)
	mainSource := out["Main.c"]
	if !strings.Contains(mainSource, "(unsigned int)(x) >> 2") {
		t.Errorf("expected >>> to lower to an explicit unsigned-int shift:\n%s", mainSource)
	}
}

const binaryLiteralProgram = `
class Main {
	public static void main() {
		int x;
		x = 0b1010;
	}
}
`

func TestGenerateBinaryLiteralReRendersAsDecimal(t *testing.T) {
	out := generateSource(t, binaryLiteralProgram)
	mainSource := out["Main.c"]
	if !strings.Contains(mainSource, "x = 10;") {
		t.Errorf("expected 0b1010 to re-render as decimal 10:\n%s", mainSource)
	}
	if strings.Contains(mainSource, "0b1010") {
		t.Errorf("expected the binary spelling not to survive into C source:\n%s", mainSource)
	}
}

const controlFlowProgram = `
class Main {
	public static void main() {
		int i;
		i = 0;
		while (i < 10) {
			if (i == 5) {
				break;
			}
			if (i % 2 == 0) {
				i = i + 1;
				continue;
			}
			i = i + 1;
		}
		do {
			i = i - 1;
		} while (i > 0);
		for (i = 0; i < 10; i = i + 1) {
			i = i;
		}
	}
}
`

func TestGenerateControlFlowLowersToGotoLabels(t *testing.T) {
	out := generateSource(t, controlFlowProgram)
	mainSource := out["Main.c"]

	for _, want := range []string{
		"while0_start:;",
		"while0_end:;",
		"if1_end:;",
		"if2_end:;",
		"goto while0_end;",   // break
		"goto while0_start;", // continue
		"while3_start:;",
		"while3_cond:;",
		"for4_start:;",
		"for4_update:;",
		"for4_end:;",
	} {
		if !strings.Contains(mainSource, want) {
			t.Errorf("expected control-flow lowering to contain %q:\n%s", want, mainSource)
		}
	}
}

func TestGenerateBreakOutsideLoopIsCodeGenError(t *testing.T) {
	src := `
		class Main {
			public static void main() {
				break;
			}
		}
	`
	project, err := parser.New(lexer.Tokenize(src)).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Semantic analysis doesn't reject a stray break, so this exercises the
	// code generator's own loopStack check directly.
	a := semantic.NewAnalyzer(project)
	_ = a.Analyze()
	_, err = NewGenerator(project, a.Registry()).GenerateAll()
	if err == nil {
		t.Fatal("expected a code-generation error for break used outside a loop")
	}
}

func TestGenerateBuildManifestGlobsSourcesAndNamesMainClass(t *testing.T) {
	out := generateSource(t, inheritanceProgram)
	manifest := out["CMakeLists.txt"]
	for _, want := range []string{
		"project(Main C)",
		`file(GLOB Main_SOURCES "${CMAKE_CURRENT_SOURCE_DIR}/*.c" "${CMAKE_CURRENT_SOURCE_DIR}/*.h")`,
		"add_executable(Main ${Main_SOURCES})",
	} {
		if !strings.Contains(manifest, want) {
			t.Errorf("expected CMakeLists.txt to contain %q:\n%s", want, manifest)
		}
	}
}

func TestGenerateIntArraySupportFilesAreFixed(t *testing.T) {
	out := generateSource(t, inheritanceProgram)
	if !strings.Contains(out["__int_array.h"], "typedef struct __int_array {") {
		t.Errorf("unexpected __int_array.h content:\n%s", out["__int_array.h"])
	}
	if !strings.Contains(out["__int_array.c"], "calloc((size_t) size, sizeof(int))") {
		t.Errorf("unexpected __int_array.c content:\n%s", out["__int_array.c"])
	}
}

func TestGenerateClassOrderFollowsTopologicalRegistration(t *testing.T) {
	project, err := parser.New(lexer.Tokenize(inheritanceProgram)).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := semantic.NewAnalyzer(project)
	if err := a.Analyze(); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	g := NewGenerator(project, a.Registry())
	order := g.classOrder()

	idx := func(name string) int {
		for i, n := range order {
			if n == name {
				return i
			}
		}
		return -1
	}
	if idx("Animal") == -1 || idx("Dog") == -1 || idx("Main") == -1 {
		t.Fatalf("expected Animal, Dog, and Main in class order, got %v", order)
	}
	if idx("Animal") > idx("Dog") {
		t.Errorf("expected Animal before Dog in class order, got %v", order)
	}
}

func TestGenerateSnapshotOfIntArrayAndBuildManifest(t *testing.T) {
	out := generateSource(t, inheritanceProgram)
	snaps.MatchSnapshot(t, "int_array_header", out["__int_array.h"])
	snaps.MatchSnapshot(t, "int_array_source", out["__int_array.c"])
	snaps.MatchSnapshot(t, "build_manifest", out["CMakeLists.txt"])
}

func TestGenerateSnapshotOfDogClassFiles(t *testing.T) {
	out := generateSource(t, inheritanceProgram)
	snaps.MatchSnapshot(t, "dog_header", out["Dog.h"])
	snaps.MatchSnapshot(t, "dog_source", out["Dog.c"])
}
