package fixture

// StepMania is a trimmed chart file with one single and one double chart
const StepMania = `#TITLE:Void Step;
#ARTIST:Ex-Machina;
#BANNER:void-bn.png;
#MUSIC:void.ogg;
#OFFSET:-0.012;
#BPMS:0.000=175.000,64.000=180.000;
#NOTES:
     dance-double:
     :
     Challenge:
     12:
     0,0,0,0,0:
00000000
;
#NOTES:
     dance-single:
     :
     Hard:
     9:
     0,0,0,0,0:
1000
0100
0010
0001
;
`
